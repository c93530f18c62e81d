package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/meshbridge/meshbridge/internal/util"
	"github.com/robfig/cron/v3"
)

type Expirer interface {
	Expire(ctx context.Context, now int64) (int, error)
}

type JanitorConfig struct {
	Schedule string        `flag:"schedule" desc:"cron schedule of the expiry sweep" default:"@every 1m"`
	Timeout  time.Duration `flag:"timeout" desc:"max duration of a single sweep" default:"10s"`
}

// Janitor periodically removes expired records from a set of stores.
type Janitor struct {
	config  *JanitorConfig
	cron    *cron.Cron
	clock   Clock
	targets []target
}

type target struct {
	name    string
	expirer Expirer
}

func NewJanitor(config *JanitorConfig, clock Clock) (*Janitor, error) {
	schedule, err := util.ParseCron(config.Schedule)
	if err != nil {
		return nil, err
	}

	j := &Janitor{
		config: config,
		cron:   cron.New(cron.WithParser(util.CronParser())),
		clock:  clock,
	}

	j.cron.Schedule(schedule, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.config.Timeout)
		defer cancel()

		j.Sweep(ctx)
	}))

	return j, nil
}

func (j *Janitor) String() string {
	return "janitor"
}

func (j *Janitor) Add(name string, e Expirer) {
	j.targets = append(j.targets, target{name: name, expirer: e})
}

func (j *Janitor) Start(chan<- error) {
	slog.Info("starting janitor", "schedule", j.config.Schedule)
	j.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() error {
	<-j.cron.Stop().Done()
	return nil
}

// Sweep expires records in every registered store and returns the total
// number removed. A failing store does not prevent the others from being swept.
func (j *Janitor) Sweep(ctx context.Context) int {
	now := j.clock()
	total := 0

	for _, t := range j.targets {
		n, err := t.expirer.Expire(ctx, now)
		if err != nil {
			slog.Error("failed to expire records", "store", t.name, "error", err)
			continue
		}
		total += n
	}

	return total
}
