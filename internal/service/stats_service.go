package service

import (
	"context"

	"github.com/spec-kit/admin-console/internal/repository"
)

// DashboardStats aggregates the counters shown on the console dashboard.
type DashboardStats struct {
	Users          int `json:"users"`
	Projects       int `json:"projects"`
	PendingInvites int `json:"pendingInvites"`
}

// StatsService computes dashboard aggregates.
type StatsService struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	invites  repository.InviteRepository
}

// NewStatsService builds the service.
func NewStatsService(users repository.UserRepository, projects repository.ProjectRepository, invites repository.InviteRepository) *StatsService {
	return &StatsService{users: users, projects: projects, invites: invites}
}

// Dashboard counts active users, live projects, and outstanding invites.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.CountLive(ctx)
	if err != nil {
		return nil, err
	}
	invites, err := s.invites.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{Users: users, Projects: projects, PendingInvites: invites}, nil
}
