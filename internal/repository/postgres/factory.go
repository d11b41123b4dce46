package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/staylist/staylist-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Hotels    repo.Hotels
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Hotels:    &hotelsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
