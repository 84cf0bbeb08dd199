package cli

import "reqtool/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
