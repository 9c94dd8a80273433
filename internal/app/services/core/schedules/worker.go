package schedules

import (
	"context"
	"fmt"
	"mise-service/internal/app/config"
	"mise-service/internal/app/contracts"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// statusMemoryTTL keeps last-seen cell statuses around long enough to
// survive an overnight slot plus slack before redis forgets them.
const statusMemoryTTL = 48 * time.Hour

// Worker repolls "now" on a fixed cadence and publishes an event whenever a
// cell's temporal status flips. The resolver itself stays pure; this worker
// owns the timer.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	cells    contracts.ScheduleCellRepository
	slots    contracts.TimeSlotRepository
	redis    contracts.RedisRepository
	resolver *StatusResolver
	pub      contracts.SchedulePublisher
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	locker contracts.LockerService,
	cells contracts.ScheduleCellRepository,
	slots contracts.TimeSlotRepository,
	redisRepo contracts.RedisRepository,
	resolver *StatusResolver,
	pub contracts.SchedulePublisher,
) *Worker {
	return &Worker{
		log:      log,
		cfg:      cfg,
		locker:   locker,
		cells:    cells,
		slots:    slots,
		redis:    redisRepo,
		resolver: resolver,
		pub:      pub,
	}
}

// Start schedules the periodic repoll. Falls back to a per-minute cadence
// when the configured cron spec does not parse.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.StatusTickerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("schedules.worker: invalid cron spec, falling back to @every 1m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 1m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight runs and waits for the cron scheduler to drain.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisTickerLeaderLockKey, 2*time.Minute)
	if err != nil {
		w.log.Warn("schedules.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisTickerLeaderLockKey, token)

	now := time.Now().In(w.resolver.Location())
	today := utils.FormatCalendarDate(now)
	// Yesterday's overnight slots can still be live, so the scan window
	// starts one day back.
	yesterday := utils.FormatCalendarDate(now.AddDate(0, 0, -1))

	cells, err := w.cells.FindCellsByDateRange(ctx, yesterday, today)
	if err != nil {
		w.log.Warn("schedules.worker: cell scan failed", zap.Error(err))
		return
	}
	slots, err := w.slots.ListTimeSlots(ctx)
	if err != nil {
		w.log.Warn("schedules.worker: catalog load failed", zap.Error(err))
		return
	}

	catalog := make(map[string]bool, len(slots))
	bySlotID := make(map[string]int, len(slots))
	for i, slot := range slots {
		catalog[slot.ID] = true
		bySlotID[slot.ID] = i
	}

	for _, cell := range cells {
		if !catalog[cell.TimeSlotID] {
			continue
		}
		slot := slots[bySlotID[cell.TimeSlotID]]
		status := w.resolver.Resolve(cell.Date, slot, now)

		stateKey := fmt.Sprintf(constvars.RedisCellStatusKeyFormat, cell.Date, cell.TimeSlotID)
		raw, err := w.redis.Get(ctx, stateKey)
		if err != nil {
			w.log.Warn("schedules.worker: status memory read failed",
				zap.String(constvars.LoggingRedisKey, stateKey),
				zap.Error(err),
			)
			continue
		}
		var previous string
		if raw != "" {
			_ = json.Unmarshal([]byte(raw), &previous)
		}
		if previous == string(status) {
			continue
		}

		if err := w.redis.Set(ctx, stateKey, string(status), statusMemoryTTL); err != nil {
			w.log.Warn("schedules.worker: status memory write failed",
				zap.String(constvars.LoggingRedisKey, stateKey),
				zap.Error(err),
			)
			continue
		}
		if w.pub == nil {
			continue
		}
		if err := w.pub.PublishScheduleEvent(ctx, contracts.ScheduleEvent{
			Type:       contracts.ScheduleEventCellStatus,
			Date:       cell.Date,
			TimeSlotID: cell.TimeSlotID,
			Status:     string(status),
		}); err != nil {
			w.log.Warn("schedules.worker: status event publish failed", zap.Error(err))
		}
	}
}
