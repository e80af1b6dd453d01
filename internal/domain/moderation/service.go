package moderation

import (
	"context"
	"errors"
	"strings"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
	"family-connect-go/internal/domain/user"
)

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Block is idempotent: a repeated call returns the row stored by the first one.
func (s *Service) Block(ctx context.Context, userID, blockedUserID string) (*UserBlock, error) {
	userID, blockedUserID, err := s.parsePair(userID, blockedUserID, "blockedUserId")
	if err != nil {
		return nil, err
	}
	if userID == blockedUserID {
		return nil, apperr.Validation("cannot block yourself")
	}
	if err := s.requireUsers(ctx, userID, blockedUserID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBlock(ctx, userID, blockedUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrBlockNotFound) {
		return nil, err
	}

	block := UserBlock{
		ID:            ids.New(),
		UserID:        userID,
		BlockedUserID: blockedUserID,
	}
	if err := s.repo.CreateBlock(ctx, &block); err != nil {
		if errors.Is(err, ErrBlockExists) {
			return s.repo.GetBlock(ctx, userID, blockedUserID)
		}
		return nil, err
	}
	return &block, nil
}

// Unblock removes only the directed row. A missing row is not an error.
func (s *Service) Unblock(ctx context.Context, userID, blockedUserID string) error {
	userID, blockedUserID, err := s.parsePair(userID, blockedUserID, "blockedUserId")
	if err != nil {
		return err
	}
	_, err = s.repo.DeleteBlock(ctx, userID, blockedUserID)
	return err
}

func (s *Service) ListBlocked(ctx context.Context, userID string) ([]BlockedUser, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.repo.ListBlocksBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	lookup := make([]string, 0, len(blocks))
	for _, block := range blocks {
		lookup = append(lookup, block.BlockedUserID)
	}
	profiles, err := s.users.PublicUsers(ctx, lookup)
	if err != nil {
		return nil, err
	}

	result := make([]BlockedUser, 0, len(blocks))
	for _, block := range blocks {
		result = append(result, BlockedUser{Block: block, User: profileOf(profiles, block.BlockedUserID)})
	}
	return result, nil
}

// ListBlocks is the admin audit view of every block.
func (s *Service) ListBlocks(ctx context.Context) ([]BlockView, error) {
	blocks, err := s.repo.ListBlocks(ctx)
	if err != nil {
		return nil, err
	}

	lookup := make([]string, 0, len(blocks)*2)
	for _, block := range blocks {
		lookup = append(lookup, block.UserID, block.BlockedUserID)
	}
	profiles, err := s.users.PublicUsers(ctx, lookup)
	if err != nil {
		return nil, err
	}

	result := make([]BlockView, 0, len(blocks))
	for _, block := range blocks {
		result = append(result, BlockView{
			Block:   block,
			Blocker: profileOf(profiles, block.UserID),
			Blocked: profileOf(profiles, block.BlockedUserID),
		})
	}
	return result, nil
}

// IsBlocked reports whether either user has blocked the other.
func (s *Service) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	return s.repo.BlockExistsBetween(ctx, a, b)
}

// BlockedUserIDs returns the ids hidden from userID in either direction.
func (s *Service) BlockedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	counterparts, err := s.repo.BlockCounterparts(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make(map[string]struct{}, len(counterparts))
	for _, id := range counterparts {
		result[id] = struct{}{}
	}
	return result, nil
}

func (s *Service) Report(ctx context.Context, input ReportInput) (*UserReport, error) {
	reporterID, reportedID, err := s.parsePair(input.ReporterID, input.ReportedUserID, "reportedUserId")
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperr.Validation("reason is required")
	}
	if reporterID == reportedID {
		return nil, apperr.Validation("cannot report yourself")
	}
	if err := s.requireUsers(ctx, reporterID, reportedID); err != nil {
		return nil, err
	}

	report := UserReport{
		ID:             ids.New(),
		ReporterID:     reporterID,
		ReportedUserID: reportedID,
		Reason:         reason,
		Status:         ReportStatusPending,
	}
	if input.Details != nil {
		if details := strings.TrimSpace(*input.Details); details != "" {
			report.Details = &details
		}
	}
	if err := s.repo.CreateReport(ctx, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) ListReports(ctx context.Context, status string) ([]ReportView, error) {
	status = strings.TrimSpace(status)
	if status != "" && !ValidReportStatus(status) {
		return nil, apperr.Validation("unknown report status %q", status)
	}

	reports, err := s.repo.ListReports(ctx, status)
	if err != nil {
		return nil, err
	}

	lookup := make([]string, 0, len(reports)*2)
	for _, report := range reports {
		lookup = append(lookup, report.ReporterID, report.ReportedUserID)
	}
	profiles, err := s.users.PublicUsers(ctx, lookup)
	if err != nil {
		return nil, err
	}

	result := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		result = append(result, ReportView{
			Report:   report,
			Reporter: profileOf(profiles, report.ReporterID),
			Reported: profileOf(profiles, report.ReportedUserID),
		})
	}
	return result, nil
}

// SetReportStatus accepts any of the four statuses regardless of the current one.
func (s *Service) SetReportStatus(ctx context.Context, reportID, status string) (*UserReport, error) {
	reportID, err := ids.Parse("reportId", reportID)
	if err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if !ValidReportStatus(status) {
		return nil, apperr.Validation("status must be one of pending, reviewed, resolved, dismissed")
	}

	updated, err := s.repo.UpdateReportStatus(ctx, reportID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrReportNotFound
	}
	return s.repo.GetReport(ctx, reportID)
}

func (s *Service) parsePair(a, b, field string) (string, string, error) {
	first, err := ids.Parse("userId", a)
	if err != nil {
		return "", "", err
	}
	second, err := ids.Parse(field, b)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

func (s *Service) requireUsers(ctx context.Context, userIDs ...string) error {
	profiles, err := s.users.PublicUsers(ctx, userIDs)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if _, ok := profiles[id]; !ok {
			return user.ErrUserNotFound
		}
	}
	return nil
}

func profileOf(profiles map[string]user.PublicUser, id string) *user.PublicUser {
	profile, ok := profiles[id]
	if !ok {
		return nil
	}
	return &profile
}
