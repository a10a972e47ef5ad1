package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/service"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *service.AnalysisService
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context

	mu          sync.Mutex
	lastLevel   model.RiskLevel
	hasLast     bool
	lastSignals map[string]model.Signal

	log *logrus.Entry
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *service.AnalysisService, tn *notifier.TelegramNotifier, rec recorder.Recorder, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Service:     svc,
		Notifier:    tn,
		Recorder:    rec,
		Ctx:         ctx,
		lastSignals: make(map[string]model.Signal),
		log:         log.WithField("component", "scheduler"),
	}
}

// RegisterAll registers the portfolio scan and signal check tasks.
func (s *Scheduler) RegisterAll(portfolioCron, signalCron string) error {
	if _, err := s.Cron.AddFunc(portfolioCron, s.portfolioScan); err != nil {
		return fmt.Errorf("register portfolio scan: %w", err)
	}
	if _, err := s.Cron.AddFunc(signalCron, s.signalCheck); err != nil {
		return fmt.Errorf("register signal check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunScanNow executes the portfolio scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.portfolioScan()
}

// portfolioScan runs the full portfolio analysis, records it, sends the
// daily report, and alerts when the risk level crosses a band boundary.
func (s *Scheduler) portfolioScan() {
	s.log.Info("running portfolio scan")

	summary, totalValue, err := s.Service.PortfolioSummary(s.Ctx)
	if err != nil {
		s.log.WithError(err).Error("portfolio scan")
		s.trySend(fmt.Sprintf("❌ Portfolio scan failed: %v", err))
		return
	}

	s.trySend(notifier.FormatPortfolioReport(summary, totalValue))

	s.mu.Lock()
	previous := s.lastLevel
	crossed := s.hasLast && previous != summary.RiskLevel
	s.lastLevel = summary.RiskLevel
	s.hasLast = true
	s.mu.Unlock()

	if crossed {
		s.trySend(notifier.FormatRiskAlert(summary, previous))
	}

	if err := s.Recorder.RecordPortfolio(&recorder.PortfolioSnapshot{
		Summary:    summary,
		TotalValue: totalValue,
		AssetCount: len(summary.Allocation),
	}); err != nil {
		s.log.WithError(err).Error("record portfolio")
	}
}

// signalCheck re-analyzes every held asset and alerts when an asset's
// signal changes to something actionable (anything other than hold).
func (s *Scheduler) signalCheck() {
	s.log.Info("running signal check")

	for _, assetID := range s.Service.Holdings.AssetIDs() {
		riskRes, err := s.Service.AssetRisk(s.Ctx, assetID)
		if err != nil {
			s.log.WithError(err).WithField("asset", assetID).Error("signal check")
			continue
		}
		trendRes, err := s.Service.AssetTrend(s.Ctx, assetID)
		if err != nil {
			s.log.WithError(err).WithField("asset", assetID).Error("trend analysis")
		}
		dcaRes, err := s.Service.AssetDCA(s.Ctx, assetID)
		if err != nil {
			s.log.WithError(err).WithField("asset", assetID).Error("dca analysis")
		}

		symbol := assetID
		for _, h := range s.Service.Holdings.List() {
			if h.AssetID == assetID {
				symbol = h.Symbol
				break
			}
		}

		s.mu.Lock()
		prev, seen := s.lastSignals[assetID]
		s.lastSignals[assetID] = riskRes.Signal
		s.mu.Unlock()

		if riskRes.Signal != model.SignalHold && (!seen || prev != riskRes.Signal) {
			s.trySend(notifier.FormatSignalAlert(symbol, riskRes))
		}

		if err := s.Recorder.RecordAssetRisk(&recorder.AssetRiskSnapshot{
			AssetID: assetID,
			Symbol:  symbol,
			Risk:    riskRes,
			Trend:   trendRes,
			DCA:     dcaRes,
		}); err != nil {
			s.log.WithError(err).Error("record asset risk")
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/portfolio":
		summary, totalValue, err := s.Service.PortfolioSummary(s.Ctx)
		if err != nil {
			return fmt.Sprintf("❌ portfolio analysis failed: %v", err)
		}
		return notifier.FormatPortfolioReport(summary, totalValue)
	case "/risk":
		if len(fields) < 2 {
			return "usage: /risk <asset-id>"
		}
		assetID := strings.ToLower(fields[1])
		riskRes, err := s.Service.AssetRisk(s.Ctx, assetID)
		if err != nil {
			return fmt.Sprintf("❌ analysis failed for %s: %v", assetID, err)
		}
		dcaRes, err := s.Service.AssetDCA(s.Ctx, assetID)
		if err != nil {
			dcaRes = nil
		}
		return notifier.FormatAssetReport(assetID, riskRes, dcaRes)
	case "/scan":
		go s.portfolioScan()
		return "scan started"
	default:
		return "Commands:\n• /portfolio — portfolio risk report\n• /risk <asset-id> — single asset analysis\n• /scan — run a full scan now"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.WithError(err).Error("send notification")
	}
}
