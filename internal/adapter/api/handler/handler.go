package handler

import (
	"sokoni/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	listingHandler      *ListingHandler
	postingHandler      *PostingHandler
	favoriteHandler     *SavedItemHandler
	bookmarkHandler     *SavedItemHandler
	savedSearchHandler  *SavedSearchHandler
	verificationHandler *VerificationHandler
	notificationHandler *NotificationHandler
)

// Setup wires the shared handler singletons the routers hand out.
func Setup(
	authUC *usecase.AuthUseCase,
	userUC *usecase.UserUseCase,
	listingUC *usecase.ListingUseCase,
	suggestUC *usecase.SuggestUseCase,
	postingUC *usecase.PostingUseCase,
	favoriteUC *usecase.SavedItemUseCase,
	bookmarkUC *usecase.SavedItemUseCase,
	savedSearchUC *usecase.SavedSearchUseCase,
	verificationUC *usecase.VerificationUseCase,
	notificationUC *usecase.NotificationUseCase,
) {
	authHandler = NewAuthHandler(authUC)
	userHandler = NewUserHandler(userUC)
	listingHandler = NewListingHandler(listingUC, suggestUC)
	postingHandler = NewPostingHandler(postingUC)
	favoriteHandler = NewSavedItemHandler(favoriteUC)
	bookmarkHandler = NewSavedItemHandler(bookmarkUC)
	savedSearchHandler = NewSavedSearchHandler(savedSearchUC)
	verificationHandler = NewVerificationHandler(verificationUC)
	notificationHandler = NewNotificationHandler(notificationUC)
}

func GetAuthHandler() *AuthHandler                 { return authHandler }
func GetUserHandler() *UserHandler                 { return userHandler }
func GetListingHandler() *ListingHandler           { return listingHandler }
func GetPostingHandler() *PostingHandler           { return postingHandler }
func GetFavoriteHandler() *SavedItemHandler        { return favoriteHandler }
func GetBookmarkHandler() *SavedItemHandler        { return bookmarkHandler }
func GetSavedSearchHandler() *SavedSearchHandler   { return savedSearchHandler }
func GetVerificationHandler() *VerificationHandler { return verificationHandler }
func GetNotificationHandler() *NotificationHandler { return notificationHandler }
