package details

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jamath_backend/internals/configs"
	reminderService "jamath_backend/internals/features/finance/reminders/service"
	rolloverRepo "jamath_backend/internals/features/finance/rollover/repository"
	rolloverService "jamath_backend/internals/features/finance/rollover/service"
	memberRepo "jamath_backend/internals/features/members/members/repository"
	tokenRepo "jamath_backend/internals/features/notifications/device_tokens/repository"
	pushService "jamath_backend/internals/features/notifications/push/service"
	logRepo "jamath_backend/internals/features/system/logs/repository"
	authService "jamath_backend/internals/features/users/auth/service"
	"jamath_backend/internals/helpers/cache"
)

// Deps are the shared collaborators built once in main.
type Deps struct {
	DB       *gorm.DB
	Push     *pushService.Dispatcher
	Accounts *authService.SupabaseAdmin
	Cache    cache.Cache
	Log      *zap.Logger
}

func NewReminderService(d Deps) *reminderService.ReminderService {
	return reminderService.NewReminderService(
		tokenRepo.NewDeviceTokenRepository(d.DB),
		memberRepo.NewMemberRepository(d.DB),
		logRepo.NewLogRepository(d.DB),
		d.Push,
		d.Log,
	)
}

func NewRolloverService(d Deps) *rolloverService.RolloverService {
	return rolloverService.NewRolloverService(
		rolloverRepo.NewRolloverRepository(d.DB),
		logRepo.NewLogRepository(d.DB),
		configs.RolloverHeadAmount,
		configs.RolloverDependentAmt,
		d.Log,
	)
}
