package handler

import (
	"context"

	authdomain "family-connect-go/internal/domain/auth"
	connectionsdomain "family-connect-go/internal/domain/connections"
	discoverydomain "family-connect-go/internal/domain/discovery"
	eventsdomain "family-connect-go/internal/domain/events"
	listingsdomain "family-connect-go/internal/domain/listings"
	messagingdomain "family-connect-go/internal/domain/messaging"
	moderationdomain "family-connect-go/internal/domain/moderation"
	userdomain "family-connect-go/internal/domain/user"
	"family-connect-go/internal/mailer"
	"family-connect-go/pkg/logger"
)

//go:generate mockgen -destination=mock_services_test.go -package=handler family-connect-go/internal/transport/httpserver/handler AuthService,ConnectionService

type AuthService interface {
	SignUp(ctx context.Context, email, password, familyName string) (*userdomain.PublicUser, error)
	SignIn(ctx context.Context, email, password string) (*userdomain.PublicUser, error)
	IssueResetToken(ctx context.Context, email string) (*authdomain.ResetTicket, error)
	VerifyResetToken(ctx context.Context, email, value string) error
	ResetPassword(ctx context.Context, email, value, newPassword string) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*userdomain.PublicUser, error)
	UpdateProfile(ctx context.Context, input userdomain.UpdateProfileInput) (*userdomain.PublicUser, error)
	ListFamilyMembers(ctx context.Context, userID string) ([]userdomain.FamilyMember, error)
	AddFamilyMember(ctx context.Context, userID string, input userdomain.FamilyMemberInput) (*userdomain.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, memberID string, input userdomain.FamilyMemberInput) (*userdomain.FamilyMember, error)
	RemoveFamilyMember(ctx context.Context, memberID string) error
}

type DiscoveryService interface {
	Discover(ctx context.Context, userID string) ([]discoverydomain.Candidate, error)
}

type ConnectionService interface {
	Request(ctx context.Context, userID, targetUserID string) (*connectionsdomain.Connection, error)
	Respond(ctx context.Context, connectionID, responderID, status string) (*connectionsdomain.Connection, error)
	ListFor(ctx context.Context, userID string) ([]connectionsdomain.View, error)
	Delete(ctx context.Context, connectionID, userID string) error
}

type MessagingService interface {
	GetOrCreateThread(ctx context.Context, userA, userB string) (*messagingdomain.MessageThread, error)
	Send(ctx context.Context, threadID, senderID, text string) (*messagingdomain.Message, error)
	ListMessages(ctx context.Context, threadID string) ([]messagingdomain.Message, error)
	MarkThreadRead(ctx context.Context, threadID, readerID string) (int64, error)
	UnreadCount(ctx context.Context, threadID, userID string) (int64, error)
	TotalUnread(ctx context.Context, userID string) (int64, error)
	ListThreads(ctx context.Context, userID string) ([]messagingdomain.ThreadView, error)
}

type ModerationService interface {
	Block(ctx context.Context, userID, blockedUserID string) (*moderationdomain.UserBlock, error)
	Unblock(ctx context.Context, userID, blockedUserID string) error
	ListBlocked(ctx context.Context, userID string) ([]moderationdomain.BlockedUser, error)
	ListBlocks(ctx context.Context) ([]moderationdomain.BlockView, error)
	Report(ctx context.Context, input moderationdomain.ReportInput) (*moderationdomain.UserReport, error)
	ListReports(ctx context.Context, status string) ([]moderationdomain.ReportView, error)
	SetReportStatus(ctx context.Context, reportID, status string) (*moderationdomain.UserReport, error)
}

type EventService interface {
	Create(ctx context.Context, input eventsdomain.EventInput) (*eventsdomain.Event, error)
	Get(ctx context.Context, eventID string) (*eventsdomain.EventView, error)
	List(ctx context.Context, includePast bool) ([]eventsdomain.EventView, error)
	Update(ctx context.Context, eventID string, input eventsdomain.EventInput) (*eventsdomain.Event, error)
	Delete(ctx context.Context, eventID, userID string) error
	Attend(ctx context.Context, eventID, userID string) error
	Unattend(ctx context.Context, eventID, userID string) error
	ListAttendees(ctx context.Context, eventID string) ([]eventsdomain.Attendee, error)
}

type ListingService interface {
	CreateBusiness(ctx context.Context, input listingsdomain.BusinessInput) (*listingsdomain.Business, error)
	GetBusiness(ctx context.Context, businessID string) (*listingsdomain.Business, error)
	ListBusinesses(ctx context.Context, category string) ([]listingsdomain.Business, error)
	ListBusinessesByOwner(ctx context.Context, userID string) ([]listingsdomain.Business, error)
	UpdateBusiness(ctx context.Context, businessID string, input listingsdomain.BusinessInput) (*listingsdomain.Business, error)
	DeleteBusiness(ctx context.Context, businessID, userID string) error
	ListWelcomeCards(ctx context.Context, includeInactive bool) ([]listingsdomain.WelcomeCard, error)
	CreateWelcomeCard(ctx context.Context, input listingsdomain.WelcomeCardInput) (*listingsdomain.WelcomeCard, error)
	UpdateWelcomeCard(ctx context.Context, cardID string, input listingsdomain.WelcomeCardInput) (*listingsdomain.WelcomeCard, error)
	DeleteWelcomeCard(ctx context.Context, cardID string) error
}

type Handlers struct {
	Auth        AuthService
	Users       UserService
	Discovery   DiscoveryService
	Connections ConnectionService
	Messaging   MessagingService
	Moderation  ModerationService
	Events      EventService
	Listings    ListingService
	Mailer      mailer.ResetMailer
	log         logger.Logger
}

func New(
	auth AuthService,
	users UserService,
	discovery DiscoveryService,
	connections ConnectionService,
	messaging MessagingService,
	moderation ModerationService,
	events EventService,
	listings ListingService,
	resetMailer mailer.ResetMailer,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Auth:        auth,
		Users:       users,
		Discovery:   discovery,
		Connections: connections,
		Messaging:   messaging,
		Moderation:  moderation,
		Events:      events,
		Listings:    listings,
		Mailer:      resetMailer,
		log:         log,
	}
}

// logFor prefers the request-scoped logger installed by the logging middleware.
func (h *Handlers) logFor(ctx context.Context) logger.Logger {
	return logger.FromContext(ctx, h.log)
}
