package http

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/infrastructure/cache"
	"github.com/orris-inc/aticket/internal/infrastructure/repository"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

const (
	departmentCacheSize = 64
	departmentCacheTTL  = 5 * time.Minute
)

// repositories holds every repository instance used by the container.
type repositories struct {
	ticketRepo     *repository.TicketRepository
	commentRepo    *repository.CommentRepository
	attachmentRepo *repository.AttachmentRepository
	auditRepo      *repository.AuditLogRepository
	departmentRepo *cache.CachedDepartmentRepository
	userDirectory  *repository.UserDirectory
	counterStore   *repository.ProtocolCounterStore
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		ticketRepo:     repository.NewTicketRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		attachmentRepo: repository.NewAttachmentRepository(db),
		auditRepo:      repository.NewAuditLogRepository(db),
		departmentRepo: cache.NewCachedDepartmentRepository(repository.NewDepartmentRepository(db), departmentCacheSize, departmentCacheTTL),
		userDirectory:  repository.NewUserDirectory(db),
		counterStore:   repository.NewProtocolCounterStore(db, log),
	}
}
