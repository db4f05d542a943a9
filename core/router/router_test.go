package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/core/router"
)

func serve(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterPathParams(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/session/{id}", func(ctx *router.Context) handler.Response {
		return response.String("id=" + ctx.Param("id"))
	})
	r.Get("/session/email/{email}", func(ctx *router.Context) handler.Response {
		return response.String("email=" + ctx.Param("email"))
	})

	w := serve(t, r, http.MethodGet, "/session/6474ebae9b1c30f834df26e7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "id=6474ebae9b1c30f834df26e7", w.Body.String())

	w = serve(t, r, http.MethodGet, "/session/email/a@b.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "email=a@b.com", w.Body.String())
}

func TestRouterLiteralSegmentsWinOverParams(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Put("/session/{id}", func(ctx *router.Context) handler.Response {
		return response.String("update")
	})
	r.Put("/session/{id}/results", func(ctx *router.Context) handler.Response {
		return response.String("results")
	})
	r.Put("/session/{id}/send-results", func(ctx *router.Context) handler.Response {
		return response.String("send")
	})

	assert.Equal(t, "update", serve(t, r, http.MethodPut, "/session/1").Body.String())
	assert.Equal(t, "results", serve(t, r, http.MethodPut, "/session/1/results").Body.String())
	assert.Equal(t, "send", serve(t, r, http.MethodPut, "/session/1/send-results").Body.String())
}

func TestRouterNotFoundUsesErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](
		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
	)
	r.Get("/quizz/current-version", func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]int{"version": 1})
	})

	w := serve(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)

	// Wrong method on a known path falls through to the catch-all.
	w = serve(t, r, http.MethodDelete, "/quizz/current-version")
	assert.Equal(t, http.StatusNotFound, w.Code)

	r2 := router.New[*router.Context]()
	w = serve(t, r2, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found\n", w.Body.String())
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				calls = append(calls, name)
				return next(ctx)
			}
		}
	}

	r := router.New[*router.Context](router.WithMiddleware(mw("global")))
	r.Use(mw("use"))
	r.Route("/session", func(r router.Router[*router.Context]) {
		r.With(mw("with")).Put("/{id}/send-results", func(ctx *router.Context) handler.Response {
			calls = append(calls, "handler")
			return response.NoContent()
		})
	})

	w := serve(t, r, http.MethodPut, "/session/42/send-results")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"global", "use", "with", "handler"}, calls)
}

func TestRouterErrorResponse(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](
		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
	)
	r.Get("/session/{id}", func(ctx *router.Context) handler.Response {
		return response.Error(response.ErrNotFound.WithMessage("session not found"))
	})

	w := serve(t, r, http.MethodGet, "/session/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":"not_found","message":"session not found"}`, w.Body.String())
}

func TestRouterRecoversPanics(t *testing.T) {
	t.Parallel()

	var captured error
	r := router.New[*router.Context](
		router.WithErrorHandler(func(ctx *router.Context, err error) {
			captured = err
			response.Render(ctx, response.StringWithStatus("oops", http.StatusInternalServerError))
		}),
	)
	sentinel := errors.New("kaboom")
	r.Get("/panic", func(ctx *router.Context) handler.Response {
		panic(sentinel)
	})

	w := serve(t, r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var perr router.PanicError
	require.ErrorAs(t, captured, &perr)
	assert.ErrorIs(t, captured, sentinel)
	assert.NotEmpty(t, perr.Stack())
}

func TestRouterNilResponse(t *testing.T) {
	t.Parallel()

	var captured error
	r := router.New[*router.Context](
		router.WithErrorHandler(func(ctx *router.Context, err error) {
			captured = err
			response.Render(ctx, response.Status(http.StatusInternalServerError))
		}),
	)
	r.Get("/nil", func(ctx *router.Context) handler.Response { return nil })

	serve(t, r, http.MethodGet, "/nil")
	assert.ErrorIs(t, captured, router.ErrNilResponse)
}

func TestRouterRoutesIntrospection(t *testing.T) {
	t.Parallel()

	noop := func(ctx *router.Context) handler.Response { return response.NoContent() }

	r := router.New[*router.Context]()
	r.Route("/session", func(r router.Router[*router.Context]) {
		r.Post("", noop)
		r.Get("/{id}", noop)
	})
	r.Method("/health", noop, "get", "head")

	assert.Equal(t, []router.Route{
		{Method: http.MethodPost, Pattern: "/session"},
		{Method: http.MethodGet, Pattern: "/session/{id}"},
		{Method: http.MethodGet, Pattern: "/health"},
		{Method: http.MethodHead, Pattern: "/health"},
	}, r.Routes())
}

func TestRouterInvalidRegistrations(t *testing.T) {
	t.Parallel()

	noop := func(ctx *router.Context) handler.Response { return response.NoContent() }
	r := router.New[*router.Context]()

	assert.Panics(t, func() { r.Get("session", noop) })
	assert.Panics(t, func() { r.Method("/x", noop, "FETCH") })
	assert.Panics(t, func() { r.Get("/x", nil) })
	assert.Panics(t, func() { r.Route("x", nil) })
}

type customContext struct {
	*router.Context
	tenant string
}

func TestRouterCustomContextRequiresFactory(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, router.ErrNoContextFactory, func() {
		router.New[*customContext]()
	})

	r := router.New[*customContext](router.WithContextFactory(
		func(w http.ResponseWriter, req *http.Request, params map[string]string) *customContext {
			return &customContext{Context: router.NewContext(w, req, params), tenant: "acme"}
		},
	))
	r.Get("/t/{id}", func(ctx *customContext) handler.Response {
		return response.String(strings.Join([]string{ctx.tenant, ctx.Param("id")}, ":"))
	})

	w := serve(t, r, http.MethodGet, "/t/7")
	assert.Equal(t, "acme:7", w.Body.String())
}

func TestContextSetValue(t *testing.T) {
	t.Parallel()

	type key struct{}
	r := router.New[*router.Context]()
	r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.SetValue(key{}, "v")
			return next(ctx)
		}
	})
	r.Get("/v", func(ctx *router.Context) handler.Response {
		v, _ := ctx.Value(key{}).(string)
		return response.String(v)
	})

	assert.Equal(t, "v", serve(t, r, http.MethodGet, "/v").Body.String())
}
