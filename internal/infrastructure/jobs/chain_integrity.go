package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/logger"
)

// ChainVerifier walks the ledger
type ChainVerifier interface {
	VerifyChainIntegrity(ctx context.Context) (*entities.IntegrityResult, error)
}

// ChainIntegrityJob periodically re-verifies the whole chain and exports the result
type ChainIntegrityJob struct {
	*loop
	verifier ChainVerifier
}

func NewChainIntegrityJob(verifier ChainVerifier, interval time.Duration) *ChainIntegrityJob {
	return &ChainIntegrityJob{
		loop:     newLoop("chain_integrity", interval),
		verifier: verifier,
	}
}

func (j *ChainIntegrityJob) Start(ctx context.Context) {
	j.run(ctx, j.verify)
}

func (j *ChainIntegrityJob) verify(ctx context.Context) {
	res, err := j.verifier.VerifyChainIntegrity(ctx)
	if err != nil {
		logger.Error(ctx, "Chain verification failed", zap.Error(err))
		return
	}

	metrics.ObserveIntegrity(res.Valid, res.BlockCount)
	if !res.Valid {
		fields := []zap.Field{zap.Int64("blocks", res.BlockCount), zap.String("reason", res.Reason)}
		if res.InvalidBlockIndex != nil {
			fields = append(fields, zap.Int64("invalidBlockIndex", *res.InvalidBlockIndex))
		}
		logger.Error(ctx, "Ledger integrity violation", fields...)
	}
}
