package server

import (
	"Arena/handler"
)

type Handlers struct {
	Forum *handler.Forum
}
