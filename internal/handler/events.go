package handlers

import (
	"monoblog/internal/models"
	"monoblog/internal/notifier"
)

// Типы событий повторяют контракт фронтенда
const (
	eventUserCreated           = "userCreated"
	eventUserUpdated           = "userUpdated"
	eventUserDeleted           = "userDeleted"
	eventNewPost               = "newPost"
	eventUpdatedPost           = "updatedPost"
	eventDeletedPost           = "deletedPost"
	eventProfilePictureUpdated = "profilePictureUpdated"
)

func notifierUserCreated(user *models.User) notifier.Event {
	return notifier.Event{Type: eventUserCreated, Data: user}
}

func notifierUserUpdated(user *models.User) notifier.Event {
	return notifier.Event{Type: eventUserUpdated, Data: user}
}

func notifierUserDeleted(id int64) notifier.Event {
	return notifier.Event{Type: eventUserDeleted, Data: map[string]int64{"id": id}}
}

func notifierNewPost(post *models.Post) notifier.Event {
	return notifier.Event{Type: eventNewPost, Data: post}
}

func notifierUpdatedPost(post *models.Post) notifier.Event {
	return notifier.Event{Type: eventUpdatedPost, Data: post}
}

func notifierDeletedPost(id int64) notifier.Event {
	return notifier.Event{Type: eventDeletedPost, Data: map[string]int64{"id": id}}
}

func notifierPictureUpdated(userID int64, path string) notifier.Event {
	return notifier.Event{
		Type: eventProfilePictureUpdated,
		Data: map[string]interface{}{"userId": userID, "pictureUrl": path},
	}
}
