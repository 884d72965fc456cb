package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Token   TokenSvcFacade
	User    UserSvcFacade
	Board   BoardSvcFacade
	Post    PostSvcFacade
	Comment CommentSvcFacade
	Search  SearchSvcFacade
	Chat    ChatSvcFacade
}

// StaticDataService defines the interface for seeding static data such as the default boards.
type StaticDataService interface {
	InitializeStaticData(ctx context.Context) error
}
