package main

import (
	"context"
	"log"
	"net/http"

	"github.com/knoxlab/bindery/app"
	"github.com/knoxlab/bindery/audit"
	"github.com/knoxlab/bindery/binding"
	"github.com/knoxlab/bindery/container"
	gohttp "github.com/knoxlab/bindery/http"
	"github.com/knoxlab/bindery/http/validation"
	"github.com/knoxlab/bindery/pipe"
	"github.com/knoxlab/bindery/routing"
)

const tokenValidateUser container.Token = "pipe.validateUser"

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if err := application.Boot(); err != nil {
		log.Fatalf("boot: %v", err)
	}

	// App-level pipe: validates the create-user payload.
	application.Bind(tokenValidateUser, func(r *container.Resolver) (any, error) {
		return pipe.NewValidate(validation.Rules{
			"name":  "required|min:2|max:100",
			"email": "required|email",
			"age":   "required|numeric|gte:18",
		}), nil
	})

	recorder := application.Audit()
	dispatcher := binding.NewDispatcher()
	r := application.Router()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"message": "bindery up"})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {

		// GET /api/v1/profile — the "user" parameter is bound through the
		// CurrentUser pipe, which reads the X-User-Id header from the
		// request instance installed into the request scope.
		api.Mount(http.MethodGet, "/profile", application.Container, dispatcher, binding.Endpoint{
			Name: "ProfileController.Show",
			Params: []binding.Param{
				{Name: "user", Pipe: pipe.TokenCurrentUser},
			},
			Handler: func(ctx context.Context, args []any) (any, error) {
				user := args[0].(pipe.User)
				recorder.Record(audit.Entry{
					UserID:   user.ID,
					UserName: user.Name,
					Action:   "profile.show",
				})
				return user, nil
			},
		})

		// POST /api/v1/users — the "input" parameter runs the payload
		// through the Validate pipe; invalid input renders as 422.
		api.Mount(http.MethodPost, "/users", application.Container, dispatcher, binding.Endpoint{
			Name: "UsersController.Store",
			Params: []binding.Param{
				{Name: "input", Pipe: tokenValidateUser, Source: binding.FromBody()},
			},
			Handler: func(ctx context.Context, args []any) (any, error) {
				input := args[0].(map[string]string)
				return map[string]any{
					"name":  input["name"],
					"email": input["email"],
				}, nil
			},
		})
	})

	if err := application.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
