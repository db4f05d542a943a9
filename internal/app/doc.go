// Package app wires the API process: logger, MongoDB, the optional Redis
// rate-limit store, the email sender, the router and the HTTP server.
//
//	var cfg app.Config
//	config.MustLoad(&cfg)
//
//	a, err := app.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer a.Close(context.Background())
//	return a.Run(ctx)
package app
