package pipe

import (
	"context"
	"strconv"
	"strings"

	"github.com/knoxlab/bindery/container"
	gohttp "github.com/knoxlab/bindery/http"
)

// TokenCurrentUser resolves the request-scoped *CurrentUser pipe.
const TokenCurrentUser container.Token = "pipe.currentUser"

// HeaderUserID is the header CurrentUser derives the identity from.
const HeaderUserID = "X-User-Id"

// User is the identity bound to a handler parameter by CurrentUser.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Anonymous is the identity used when the request carries no usable
// X-User-Id header.
var Anonymous = User{ID: 0, Name: "Anonymous"}

// knownUserName is the display name attached to any authenticated ID.
// There is no user store behind this pipe; the identity is header-derived.
const knownUserName = "Test User"

// CurrentUser derives the calling user from the injected request.
//
// The request arrives by constructor injection from the request scope; if no
// provider for the request token is registered there, construction fails
// with a MissingProviderError before Transform ever runs.
type CurrentUser struct {
	req *gohttp.Request
}

// NewCurrentUser builds the pipe around an already-resolved request.
func NewCurrentUser(req *gohttp.Request) *CurrentUser {
	return &CurrentUser{req: req}
}

// Transform ignores raw: the identity comes entirely from the request
// headers. A missing, empty or non-numeric header yields Anonymous — a
// data-level default, never a stand-in for a resolution failure.
func (p *CurrentUser) Transform(_ context.Context, _ any) (any, error) {
	v := strings.TrimSpace(p.req.Header(HeaderUserID))
	if v == "" {
		return Anonymous, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return Anonymous, nil
	}
	return User{ID: id, Name: knownUserName}, nil
}
