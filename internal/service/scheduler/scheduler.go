// Package scheduler 메모리에 보관된 결제 워크플로를 Cron 주기에 맞춰 정리하는 서비스입니다.
//
// 요청 처리 중에도 정리가 일어나지만, 트래픽이 끊기면 유휴 워크플로가 남아 있으므로
// 주기적으로 한 번 더 정리합니다.
package scheduler

import (
	"context"
	"sync"

	"github.com/darkkaiser/miniapp-server/pkg/cronx"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// Sweeper 주기적으로 정리할 저장소입니다. *payment.Registry가 이 인터페이스를 만족합니다.
type Sweeper interface {
	Sweep() int
	Len() int
}

// Scheduler 정해진 주기마다 Sweeper를 호출하는 서비스입니다.
type Scheduler struct {
	spec    string
	sweeper Sweeper

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

func NewService(spec string, sweeper Sweeper) *Scheduler {
	if sweeper == nil {
		panic("Sweeper는 필수입니다")
	}

	return &Scheduler{
		spec:    spec,
		sweeper: sweeper,
	}
}

// Start Cron 엔진에 정리 작업을 등록하고 시작합니다.
//
// 표현식이 잘못되었으면 serviceStopWG.Done()을 호출하고 에러를 반환합니다.
// 정상적으로 시작되면 serviceStopCtx가 취소될 때 Stop을 호출한 뒤 serviceStopWG.Done()을 호출합니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.sweeper == nil {
		serviceStopWG.Done()
		return ErrSweeperNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// - Recover: Panic 발생 시 복구하여 다음 주기에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	cronLogger := cron.VerbosePrintfLogger(applog.StandardLogger())
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cronLogger),
		cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		),
	)

	if _, err := c.AddFunc(s.spec, s.sweep); err != nil {
		serviceStopWG.Done()
		return newErrInvalidCronSpec(s.spec, err)
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"spec": s.spec,
	}).Info("서비스 시작 완료: 결제 워크플로 정리 작업이 등록되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 중지하고, 진행 중인 정리 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료")
}

func (s *Scheduler) sweep() {
	removed := s.sweeper.Sweep()
	if removed == 0 {
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"removed":   removed,
		"remaining": s.sweeper.Len(),
	}).Debug("유휴 결제 워크플로 정리")
}
