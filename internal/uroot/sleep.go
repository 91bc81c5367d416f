// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// sleepCommand pauses for a duration and stops early when ctx is canceled.
type sleepCommand struct{}

func newSleepCommand() *sleepCommand { return &sleepCommand{} }

func (c *sleepCommand) Name() string { return "sleep" }

func (c *sleepCommand) SupportedFlags() []FlagInfo { return nil }

func (c *sleepCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return wrapError("sleep", errors.New("missing operand"))
	}
	d, err := parseSleepDuration(args[1])
	if err != nil {
		return wrapError("sleep", err)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return wrapError("sleep", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// parseSleepDuration accepts a number of seconds with an optional s, m or h suffix.
func parseSleepDuration(s string) (time.Duration, error) {
	unit := time.Second
	num := s
	switch {
	case strings.HasSuffix(s, "s"):
		num = strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		num, unit = strings.TrimSuffix(s, "m"), time.Minute
	case strings.HasSuffix(s, "h"):
		num, unit = strings.TrimSuffix(s, "h"), time.Hour
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid time interval %q", s)
	}
	return time.Duration(val * float64(unit)), nil
}
