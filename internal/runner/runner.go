package runner

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	"github.com/moyu-x/file-organizer/pkg/progress"
)

// DefaultBufferSize 事件 channel 的缓冲区大小
const DefaultBufferSize = 64

// Runner 在后台 goroutine 池中执行整理任务。
// 池大小为 1 时任务按提交顺序排队，同一时间只会整理一个目录。
type Runner struct {
	workers int
	pool    *ants.Pool
	wg      sync.WaitGroup

	// detach 在 Close 时关闭，之后任务不再等待订阅方读取事件
	detach    chan struct{}
	closeOnce sync.Once
}

func New(workers int) (*Runner, error) {
	if workers < 1 {
		workers = 1
	}
	logger.Get().Debug().Msgf("创建整理任务池，工作线程数: %d", workers)

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("创建 goroutine 池失败: %w", err)
	}

	return &Runner{
		workers: workers,
		pool:    pool,
		detach:  make(chan struct{}),
	}, nil
}

// Organize 提交一次整理任务，立即返回事件 channel。
// 最后一个事件一定是 EventDone，其 Result 为 *organizer.Result，随后 channel 关闭。
// 调用方需要持续读取 channel 直到关闭，或者调用 Close 放弃订阅，否则任务会阻塞在进度回调上。
func (r *Runner) Organize(org *organizer.Organizer, dir string, opts organizer.Options) <-chan progress.Event {
	events := make(chan progress.Event, DefaultBufferSize)

	r.wg.Add(1)
	job := func() {
		defer r.wg.Done()
		defer close(events)

		sink := progress.NewChanSink(events, r.detach)
		result, err := org.Organize(dir, opts, sink)
		sink.Send(progress.Event{Kind: progress.EventDone, Percent: 100, Result: result, Err: err})
	}

	// Submit 在池满时阻塞，放到独立 goroutine 中避免阻塞调用方（通常是界面线程）
	go func() {
		if err := r.pool.Submit(job); err != nil {
			logger.Get().Error().Err(err).Str("dir", dir).Msg("提交整理任务失败")
			progress.NewChanSink(events, r.detach).Send(progress.Event{Kind: progress.EventDone, Err: err})
			close(events)
			r.wg.Done()
		}
	}()

	return events
}

// Wait 读取全部事件直到任务结束，返回最终结果
func Wait(events <-chan progress.Event) (*organizer.Result, error) {
	var done progress.Event
	for ev := range events {
		if ev.Kind == progress.EventDone {
			done = ev
		}
	}
	result, _ := done.Result.(*organizer.Result)
	return result, done.Err
}

// Close 等待已提交的任务完成后释放 goroutine 池。
// 调用后不再需要读取事件 channel，未读完的任务仍会整理完毕
func (r *Runner) Close() {
	r.closeOnce.Do(func() { close(r.detach) })
	r.wg.Wait()
	r.pool.Release()
	logger.Get().Debug().Msg("整理任务池已关闭")
}
