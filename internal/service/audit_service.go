package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"Volunteer_Hub/internal/model"
	"Volunteer_Hub/internal/pkg"
)

// AuditService 审核动作流水：同步只写 outbox 表，投递交给 AuditRelayer。
// 流水是旁路关注点，这里的任何失败都不影响审核操作本身。
type AuditService struct {
	outbox OutboxStore
}

func NewAuditService(outbox OutboxStore) *AuditService {
	return &AuditService{outbox: outbox}
}

func (s *AuditService) Record(actor Principal, action, targetKind string, targetID uint64) {
	if s == nil || s.outbox == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"time":        time.Now().UTC().Format(time.RFC3339Nano),
		"actor_id":    actor.ID,
		"actor_role":  actor.Role,
		"action":      action,
		"target_kind": targetKind,
		"target_id":   targetID,
	})
	ob := &model.ModerationOutbox{
		Action:     action,
		ActorID:    actor.ID,
		TargetKind: targetKind,
		TargetID:   targetID,
		Payload:    string(payload),
	}
	if err := s.outbox.Insert(ob); err != nil {
		log.Printf("audit outbox insert err: %v", err)
	}
}

type Sender func(ctx context.Context, ob *model.ModerationOutbox) error

type RelayStore interface {
	List(ctx context.Context, batchSize int) ([]model.ModerationOutbox, error)
	RetryUpdate(ctx context.Context, id uint64) error
	SuccessUpdate(ctx context.Context, id uint64) error
}

// AuditRelayer 定时把待投递的流水批量交给 sender
type AuditRelayer struct {
	repo      RelayStore
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewAuditRelayer(repo RelayStore, sender Sender) *AuditRelayer {
	return &AuditRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *AuditRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *AuditRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("audit outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 生产投递：按目标 id 做 key，同一目标的动作保序
func KafkaSender(p *pkg.AuditProducer) Sender {
	return func(ctx context.Context, ob *model.ModerationOutbox) error {
		key := strconv.FormatUint(ob.TargetID, 10)
		return p.Publish(ctx, key, []byte(ob.Payload))
	}
}

// LogSender 本地开发没有 kafka 时的降级 sender
func LogSender(ctx context.Context, ob *model.ModerationOutbox) error {
	log.Printf("AUDIT SEND action=%s actor=%d target=%s/%d payload=%s",
		ob.Action, ob.ActorID, ob.TargetKind, ob.TargetID, ob.Payload)
	return nil
}
