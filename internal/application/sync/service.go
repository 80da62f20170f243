package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/notification"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// Service orchestrates the order flow between the two platforms: importing
// from the source and forwarding to the target. Both entry points
// serialize through the sync gate.
type Service struct {
	source        integration.SourcePlatform
	target        integration.TargetPlatform
	orders        order.Repository
	resolver      *LinkResolver
	matcher       *ClientMatcher
	transformer   *Transformer
	notifications notification.Repository
	gate          Gate
	logger        *zap.Logger
}

// NewService creates the sync orchestrator
func NewService(
	source integration.SourcePlatform,
	target integration.TargetPlatform,
	orders order.Repository,
	resolver *LinkResolver,
	matcher *ClientMatcher,
	transformer *Transformer,
	notifications notification.Repository,
	gate Gate,
	logger *zap.Logger,
) *Service {
	return &Service{
		source:        source,
		target:        target,
		orders:        orders,
		resolver:      resolver,
		matcher:       matcher,
		transformer:   transformer,
		notifications: notifications,
		gate:          gate,
		logger:        logger.Named("sync"),
	}
}

// ---------------------------------------------------------------------------
// Import from the source platform
// ---------------------------------------------------------------------------

// SyncFromPlus imports the source platform's current orders. Orders whose
// source ID is already stored are never touched; only net-new orders are
// persisted. A transport failure aborts the whole run without persisting
// anything.
func (s *Service) SyncFromPlus(ctx context.Context) (*SyncReport, error) {
	if !s.gate.StartSync(NewSyncTask("plus-orders")) {
		return nil, shared.ErrSyncInProgress
	}
	defer s.gate.FinishSync()

	fetched, warnings, err := s.source.FetchOrders(ctx)
	if err != nil {
		s.notify(ctx, "Erro na sincronização",
			fmt.Sprintf("Não foi possível sincronizar os pedidos: %v", err),
			notification.TypeError)
		return nil, err
	}

	for _, w := range warnings {
		s.logger.Warn("Order detail field not parsed",
			zap.String("source_id", w.OrderSourceID),
			zap.String("field", w.Field),
			zap.String("detail", w.Detail),
		)
	}

	sourceIDs := make([]string, 0, len(fetched))
	for _, o := range fetched {
		sourceIDs = append(sourceIDs, o.SourceID)
	}

	existing, err := s.orders.ExistingSourceIDs(ctx, sourceIDs)
	if err != nil {
		return nil, err
	}

	var fresh []*order.Order
	for _, o := range fetched {
		if !existing[o.SourceID] {
			fresh = append(fresh, o)
		}
	}

	if len(fresh) > 0 {
		if err := s.orders.SaveBatch(ctx, fresh); err != nil {
			s.notify(ctx, "Erro na sincronização",
				fmt.Sprintf("Não foi possível salvar os pedidos: %v", err),
				notification.TypeError)
			return nil, err
		}
	}

	report := &SyncReport{
		Success: true,
		Message: fmt.Sprintf("%d novos pedidos sincronizados da Plus Delivery.", len(fresh)),
		Count:   len(fresh),
	}

	s.logger.Info("Order sync finished",
		zap.Int("fetched", len(fetched)),
		zap.Int("new", len(fresh)),
		zap.Int("warnings", len(warnings)),
	)
	s.notify(ctx, "Sincronização concluída", report.Message, notification.TypeSuccess)

	return report, nil
}

// ---------------------------------------------------------------------------
// Forward to the target platform
// ---------------------------------------------------------------------------

// SendToSaboritte forwards the selected orders to the target platform,
// sequentially. An order with any unlinked item is skipped whole and stays
// pending. Failures are per-order; the batch succeeds when at least one
// order went through.
func (s *Service) SendToSaboritte(ctx context.Context, orderIDs []uuid.UUID) (*BatchSendReport, error) {
	if !s.gate.StartSync(NewSyncTask("saboritte-send")) {
		return nil, shared.ErrSyncInProgress
	}
	defer s.gate.FinishSync()

	results := make([]SendOutcome, 0, len(orderIDs))
	for _, id := range orderIDs {
		results = append(results, s.sendOne(ctx, id))
	}

	successCount := 0
	for _, r := range results {
		if r.Success {
			successCount++
		}
	}

	report := &BatchSendReport{
		Success: successCount > 0,
		Message: fmt.Sprintf("%d/%d pedidos enviados para Saboritte", successCount, len(results)),
		Results: results,
	}

	s.logger.Info("Batch send finished",
		zap.Int("requested", len(orderIDs)),
		zap.Int("sent", successCount),
	)

	typ := notification.TypeSuccess
	title := "Pedido enviado"
	if successCount == 0 {
		typ = notification.TypeError
		title = "Erro no envio"
	}
	s.notify(ctx, title, report.Message, typ)

	return report, nil
}

// sendOne runs the whole pipeline for a single order: resolve every item,
// reconcile the client, transform and submit.
func (s *Service) sendOne(ctx context.Context, id uuid.UUID) SendOutcome {
	outcome := SendOutcome{OrderID: id}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		outcome.Message = fmt.Sprintf("Pedido não encontrado: %v", err)
		return outcome
	}
	outcome.SourceID = o.SourceID

	var resolved []ResolvedItem
	var notLinked []string
	for _, item := range o.Items {
		link, err := s.resolver.Resolve(ctx, item.Name)
		if err != nil {
			if errors.Is(err, integration.ErrLinkNotFound) {
				notLinked = append(notLinked, item.Name)
				continue
			}
			outcome.Message = fmt.Sprintf("Erro ao enviar pedido #%s: %v", o.SourceID, err)
			return outcome
		}
		resolved = append(resolved, ResolvedItem{Item: item, Link: link})
	}

	// One unlinked item blocks the whole order
	if len(notLinked) > 0 {
		outcome.NotLinkedItems = notLinked
		outcome.Message = fmt.Sprintf("Pedido #%s possui %d produto(s) não vinculado(s)", o.SourceID, len(notLinked))
		return outcome
	}

	match, err := s.matcher.Match(ctx, o.CustomerPhone)
	if err != nil {
		// Reconciliation failure degrades to sending as a new contact
		s.logger.Warn("Client lookup failed, sending as new contact",
			zap.String("source_id", o.SourceID),
			zap.Error(err),
		)
		match = ClientMatch{}
	}

	payload := s.transformer.Build(o, resolved, match)
	outcome.ClientName = payload.Name
	outcome.ClientID = payload.ClientID
	outcome.ContactExists = match.Exists

	result, err := s.target.SendOrder(ctx, payload)
	if err != nil {
		outcome.Message = fmt.Sprintf("Erro ao enviar pedido #%s: %v", o.SourceID, err)
		o.RecordSendFailure(err.Error())
		s.persistQuietly(ctx, o)
		return outcome
	}
	if !result.Accepted {
		msg := result.Message
		if msg == "" {
			msg = "Erro desconhecido"
		}
		outcome.Message = fmt.Sprintf("Falha ao enviar pedido #%s: %s", o.SourceID, msg)
		o.RecordSendFailure(msg)
		s.persistQuietly(ctx, o)
		return outcome
	}

	o.MarkSent(time.Now())
	if err := s.orders.Save(ctx, o); err != nil {
		// The platform accepted the order; losing the local flag means it
		// can be sent again on the next batch
		s.logger.Error("Failed to persist sent order",
			zap.String("source_id", o.SourceID),
			zap.Error(err),
		)
	}

	outcome.Success = true
	outcome.Message = fmt.Sprintf("Pedido #%s enviado com sucesso", o.SourceID)
	return outcome
}

func (s *Service) persistQuietly(ctx context.Context, o *order.Order) {
	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Warn("Failed to persist order failure state",
			zap.String("source_id", o.SourceID),
			zap.Error(err),
		)
	}
}

// notify records a dashboard notification. The sink is fire-and-forget; a
// failure here never changes a sync result.
func (s *Service) notify(ctx context.Context, title, message string, typ notification.Type) {
	n, err := notification.New(title, message, typ)
	if err != nil {
		return
	}
	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Warn("Failed to save notification", zap.Error(err))
	}
}
