package pipeline

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// Pool limita quantas contas podem executar o pipeline ao mesmo tempo.
// A exclusão por conta fica a cargo do lease no Redis; aqui só se limita
// o paralelismo global do processo.
type Pool struct {
	runner    *Runner
	semaphore chan struct{}
	wg        sync.WaitGroup
}

func NewPool(runner *Runner, maxConcurrent int) *Pool {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Pool{
		runner:    runner,
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

// Submit agenda a execução de um gatilho em uma goroutine do pool
func (p *Pool) Submit(ctx context.Context, trigger domain.Trigger) {
	p.wg.Add(1)
	p.semaphore <- struct{}{} // Adquirir semáforo

	go func() {
		defer func() {
			<-p.semaphore // Liberar semáforo
			p.wg.Done()
		}()

		if err := p.runner.Run(ctx, trigger); err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_account_id": trigger.AdAccountID,
				"error":         err.Error(),
			}).Error("Gatilho do pipeline terminou com erro")
		}
	}()
}

// Wait bloqueia até todos os gatilhos submetidos terminarem
func (p *Pool) Wait() {
	p.wg.Wait()
}
