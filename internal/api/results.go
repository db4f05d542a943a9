package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Arokeji/Nailted-Back/core/email"
	"github.com/Arokeji/Nailted-Back/core/email/templates"
	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/logger"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/core/router"
	"github.com/Arokeji/Nailted-Back/internal/session"
)

const (
	resultsEmailTag = "quiz-results"
	msgEmailSent    = "Email sent successfully"
	unknownCategory = "Other"
)

// CompanyName ends up in the mail subject, hence single_line.
type sendResultsRequest struct {
	Email       string       `json:"email" sanitize:"email" validate:"required;email;max:72"`
	CompanyName string       `json:"companyName" sanitize:"strip_html,single_line,max:120" validate:"required"`
	DataResults *resultsData `json:"dataResults"`
}

// resultsData is the results payload a client may send along with the
// request. It accepts both the categoryScores key and the categoryScore key
// returned by the results endpoint.
type resultsData struct {
	GlobalScore    *float64         `json:"globalScore"`
	CategoryScores []categoryResult `json:"categoryScores"`
	CategoryScore  []categoryResult `json:"categoryScore"`
}

type categoryResult struct {
	Category categoryLabel `json:"category"`
	Score    float64       `json:"score"`
}

// categoryLabel is either a plain name or a category object with a name.
type categoryLabel string

func (c *categoryLabel) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*c = categoryLabel(obj.Name)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = categoryLabel(s)
	return nil
}

type sendResultsResponse struct {
	Owner   string `json:"owner"`
	Message string `json:"message"`
}

// resultsEmail is what ends up in the mail body.
type resultsEmail struct {
	CompanyName string
	GlobalScore *float64
	Rows        []templates.Row
}

// SendResults handles PUT /session/{id}/send-results. The address becomes the
// session owner before the mail is sent.
func (h *Handler) SendResults(ctx *router.Context) handler.Response {
	id, err := sessionID(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	var req sendResultsRequest
	if err := bindRequest(ctx, &req); err != nil {
		return h.fail(ctx, err)
	}

	s, err := h.sessions.Update(ctx, id, session.Patch{Email: &req.Email})
	if err != nil {
		return h.fail(ctx, err)
	}

	data := resultsFromSession(req.CompanyName, s)
	if req.DataResults != nil {
		data = resultsFromRequest(req.CompanyName, req.DataResults)
	}

	body, err := templates.Render(ctx, resultsTemplate(data))
	if err != nil {
		return h.fail(ctx, err)
	}

	if err := h.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   req.Email,
		Subject:  resultsSubject(h.appName, req.CompanyName),
		BodyHTML: body,
		Tag:      resultsEmailTag,
	}); err != nil {
		h.log.ErrorContext(ctx, "failed to send results email",
			logger.Component("api"),
			logger.SessionID(id),
			logger.Recipient(req.Email),
			logger.Error(err),
		)
		return response.Error(response.ErrInternalServerError.WithMessage(msgEmailFailed))
	}

	h.log.InfoContext(ctx, "results email sent",
		logger.Component("api"),
		logger.SessionID(id),
		logger.Recipient(req.Email),
	)
	return response.JSON(sendResultsResponse{Owner: req.Email, Message: msgEmailSent})
}

func resultsSubject(app, company string) string {
	return strings.TrimSpace(app + " quiz results for " + company)
}

func resultsFromSession(company string, s *session.Session) resultsEmail {
	rows := make([]templates.Row, 0, len(s.CategoryScore))
	for _, cs := range s.CategoryScore {
		label := unknownCategory
		if cs.Category != nil && cs.Category.Name != "" {
			label = cs.Category.Name
		}
		rows = append(rows, templates.Row{Label: label, Score: cs.Score})
	}
	return resultsEmail{CompanyName: company, GlobalScore: s.GlobalScore, Rows: rows}
}

func resultsFromRequest(company string, d *resultsData) resultsEmail {
	scores := d.CategoryScores
	if len(scores) == 0 {
		scores = d.CategoryScore
	}
	rows := make([]templates.Row, 0, len(scores))
	for _, cs := range scores {
		label := strings.TrimSpace(string(cs.Category))
		if label == "" {
			label = unknownCategory
		}
		rows = append(rows, templates.Row{Label: label, Score: cs.Score})
	}
	return resultsEmail{CompanyName: company, GlobalScore: d.GlobalScore, Rows: rows}
}
