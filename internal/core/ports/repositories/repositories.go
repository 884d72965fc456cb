package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo    UserRepositoryFacade
	BoardRepo   BoardRepositoryFacade
	PostRepo    PostRepositoryFacade
	CommentRepo CommentRepositoryFacade
	ChatRepo    ChatMessageRepository

	// Optional collaborators; nil when not configured.
	SearchCache SearchCache
	Storage     AttachmentStorage
}
