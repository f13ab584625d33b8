package handler

import "scout-exchange/internal/service"

type Handlers struct {
	Session      *SessionHandler
	Notification *NotificationHandler
	Meta         *MetaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Session:      NewSessionHandler(services.Sessions),
		Notification: NewNotificationHandler(services.Sessions),
		Meta:         NewMetaHandler(),
	}
}
