package handler

import (
	"time"

	connectionsdomain "family-connect-go/internal/domain/connections"
	eventsdomain "family-connect-go/internal/domain/events"
	listingsdomain "family-connect-go/internal/domain/listings"
	messagingdomain "family-connect-go/internal/domain/messaging"
	moderationdomain "family-connect-go/internal/domain/moderation"
	userdomain "family-connect-go/internal/domain/user"
)

const dateLayout = "2006-01-02"

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FamilyName string    `json:"familyName"`
	Bio        *string   `json:"bio"`
	AvatarURL  *string   `json:"avatarUrl"`
	Suburb     *string   `json:"suburb"`
	City       *string   `json:"city"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	RadiusKm   int       `json:"radiusKm"`
	Interests  []string  `json:"interests"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toUserResponse(user userdomain.PublicUser) userResponse {
	interests := user.Interests
	if interests == nil {
		interests = []string{}
	}
	return userResponse{
		ID:         user.ID,
		Email:      user.Email,
		FamilyName: user.FamilyName,
		Bio:        user.Bio,
		AvatarURL:  user.AvatarURL,
		Suburb:     user.Suburb,
		City:       user.City,
		Latitude:   user.Latitude,
		Longitude:  user.Longitude,
		RadiusKm:   user.RadiusKm,
		Interests:  interests,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func toUserResponsePtr(user *userdomain.PublicUser) *userResponse {
	if user == nil {
		return nil
	}
	resp := toUserResponse(*user)
	return &resp
}

type familyMemberResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Age       *int      `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFamilyMemberResponse(member userdomain.FamilyMember) familyMemberResponse {
	return familyMemberResponse{
		ID:        member.ID,
		UserID:    member.UserID,
		Name:      member.Name,
		Age:       member.Age,
		CreatedAt: member.CreatedAt,
	}
}

func toFamilyMemberResponses(members []userdomain.FamilyMember) []familyMemberResponse {
	result := make([]familyMemberResponse, 0, len(members))
	for _, member := range members {
		result = append(result, toFamilyMemberResponse(member))
	}
	return result
}

type connectionResponse struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	TargetUserID string        `json:"targetUserId"`
	Status       string        `json:"status"`
	Direction    string        `json:"direction,omitempty"`
	OtherUserID  string        `json:"otherUserId,omitempty"`
	OtherUser    *userResponse `json:"otherUser,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func toConnectionResponse(connection connectionsdomain.Connection) connectionResponse {
	return connectionResponse{
		ID:           connection.ID,
		UserID:       connection.UserID,
		TargetUserID: connection.TargetUserID,
		Status:       connection.Status,
		CreatedAt:    connection.CreatedAt,
		UpdatedAt:    connection.UpdatedAt,
	}
}

func toConnectionViewResponse(view connectionsdomain.View) connectionResponse {
	resp := toConnectionResponse(view.Connection)
	resp.Direction = view.Direction
	resp.OtherUserID = view.CounterpartID
	resp.OtherUser = toUserResponsePtr(view.Counterpart)
	return resp
}

type threadResponse struct {
	ID            string        `json:"id"`
	User1ID       string        `json:"user1Id"`
	User2ID       string        `json:"user2Id"`
	LastMessage   *string       `json:"lastMessage"`
	LastMessageAt *time.Time    `json:"lastMessageAt"`
	OtherUserID   string        `json:"otherUserId,omitempty"`
	OtherUser     *userResponse `json:"otherUser,omitempty"`
	UnreadCount   *int64        `json:"unreadCount,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func toThreadResponse(thread messagingdomain.MessageThread) threadResponse {
	return threadResponse{
		ID:            thread.ID,
		User1ID:       thread.User1ID,
		User2ID:       thread.User2ID,
		LastMessage:   thread.LastMessage,
		LastMessageAt: thread.LastMessageAt,
		CreatedAt:     thread.CreatedAt,
	}
}

func toThreadViewResponse(view messagingdomain.ThreadView) threadResponse {
	resp := toThreadResponse(view.MessageThread)
	unread := view.UnreadCount
	resp.OtherUserID = view.OtherUserID
	resp.OtherUser = toUserResponsePtr(view.OtherUser)
	resp.UnreadCount = &unread
	return resp
}

type messageResponse struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"threadId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageResponse(message messagingdomain.Message) messageResponse {
	return messageResponse{
		ID:        message.ID,
		ThreadID:  message.ThreadID,
		SenderID:  message.SenderID,
		Text:      message.Text,
		Read:      message.Read,
		CreatedAt: message.CreatedAt,
	}
}

type blockResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	BlockedUserID string        `json:"blockedUserId"`
	Blocker       *userResponse `json:"blocker,omitempty"`
	BlockedUser   *userResponse `json:"blockedUser,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func toBlockResponse(block moderationdomain.UserBlock) blockResponse {
	return blockResponse{
		ID:            block.ID,
		UserID:        block.UserID,
		BlockedUserID: block.BlockedUserID,
		CreatedAt:     block.CreatedAt,
	}
}

type reportResponse struct {
	ID             string        `json:"id"`
	ReporterID     string        `json:"reporterId"`
	ReportedUserID string        `json:"reportedUserId"`
	Reason         string        `json:"reason"`
	Details        *string       `json:"details"`
	Status         string        `json:"status"`
	Reporter       *userResponse `json:"reporter,omitempty"`
	ReportedUser   *userResponse `json:"reportedUser,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func toReportResponse(report moderationdomain.UserReport) reportResponse {
	return reportResponse{
		ID:             report.ID,
		ReporterID:     report.ReporterID,
		ReportedUserID: report.ReportedUserID,
		Reason:         report.Reason,
		Details:        report.Details,
		Status:         report.Status,
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
}

type eventResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Date          string    `json:"date"`
	Time          *string   `json:"time"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	ImageURL      *string   `json:"imageUrl"`
	AttendeeCount *int64    `json:"attendeeCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toEventResponse(event eventsdomain.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		UserID:      event.UserID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date.Format(dateLayout),
		Time:        event.Time,
		Location:    event.Location,
		Category:    event.Category,
		ImageURL:    event.ImageURL,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func toEventViewResponse(view eventsdomain.EventView) eventResponse {
	resp := toEventResponse(view.Event)
	count := view.AttendeeCount
	resp.AttendeeCount = &count
	return resp
}

type attendeeResponse struct {
	UserID     string        `json:"userId"`
	User       *userResponse `json:"user,omitempty"`
	AttendedAt time.Time     `json:"attendedAt"`
}

type businessResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Location    *string   `json:"location"`
	Website     *string   `json:"website"`
	Phone       *string   `json:"phone"`
	ImageURL    *string   `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBusinessResponse(business listingsdomain.Business) businessResponse {
	return businessResponse{
		ID:          business.ID,
		UserID:      business.UserID,
		Name:        business.Name,
		Description: business.Description,
		Category:    business.Category,
		Location:    business.Location,
		Website:     business.Website,
		Phone:       business.Phone,
		ImageURL:    business.ImageURL,
		IsActive:    business.Active,
		CreatedAt:   business.CreatedAt,
		UpdatedAt:   business.UpdatedAt,
	}
}

func toBusinessResponses(businesses []listingsdomain.Business) []businessResponse {
	result := make([]businessResponse, 0, len(businesses))
	for _, business := range businesses {
		result = append(result, toBusinessResponse(business))
	}
	return result
}

type welcomeCardResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"imageUrl"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toWelcomeCardResponse(card listingsdomain.WelcomeCard) welcomeCardResponse {
	return welcomeCardResponse{
		ID:        card.ID,
		Title:     card.Title,
		Body:      card.Body,
		ImageURL:  card.ImageURL,
		SortOrder: card.SortOrder,
		IsActive:  card.Active,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}
