package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"spindle/green/kernel"
	"spindle/hal"
	"spindle/internal/config"

	"golang.org/x/sync/errgroup"
)

type env struct {
	cfg config.Config
	log hal.Logger
	out io.Writer
}

type scenario struct {
	name string
	help string
	run  func(ctx context.Context, e env) error
}

func scenarios() map[string]scenario {
	list := []scenario{
		{"pingpong", "one anchor bouncing messages between two green threads", runPingPong},
		{"fanin", "producers feeding one consumer through a channel group", runFanIn},
		{"reap", "no-join threads reclaimed by a later thread death", runReap},
		{"anchors", "pingpong on several anchors in parallel", runAnchors},
	}
	m := make(map[string]scenario, len(list))
	for _, s := range list {
		m[s.name] = s
	}
	return m
}

func scenarioNames(m map[string]scenario) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// spawn runs entry as the root green thread of a new anchor and waits for it.
func spawn(ctx context.Context, e env, entry kernel.Entry, arg any) (any, error) {
	a, err := kernel.SpawnKthread(entry, arg, nil, kernel.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	v, err := a.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if p, ok := v.(*kernel.PanicInfo); ok {
		return nil, fmt.Errorf("anchor %s: thread %d panicked: %v", a.ID(), p.ThreadID, p.Value)
	}
	if err, ok := v.(error); ok {
		return nil, fmt.Errorf("anchor %s: %w", a.ID(), err)
	}
	return v, nil
}

type pingResult struct {
	messages int
	sum      int
}

type stopMsg struct{}

// echo doubles every int it receives until told to stop.
func echo(ctx *kernel.Context, _ any, replies *kernel.Channel) any {
	requests := ctx.NewChannel(replies.Cap())
	ctx.SendChannel(replies, requests)
	n := 0
	for {
		switch v := ctx.Recv(requests).(type) {
		case stopMsg:
			ctx.Deref(requests)
			return n
		case int:
			n++
			if err := ctx.Send(replies, v*2); err != nil {
				return err
			}
		}
	}
}

func pingPong(capacity, messages int) kernel.Entry {
	return func(ctx *kernel.Context, _ any, _ *kernel.Channel) any {
		replies := ctx.NewChannel(capacity)
		h := ctx.Create(echo, nil, kernel.Flags{}, replies)
		requests := ctx.RecvChannel(replies)

		sum := 0
		for i := 1; i <= messages; i++ {
			if err := ctx.Send(requests, i); err != nil {
				return err
			}
			sum += ctx.Recv(replies).(int)
		}
		if err := ctx.Send(requests, stopMsg{}); err != nil {
			return err
		}
		ctx.Deref(requests)

		v, err := ctx.Join(h)
		if err != nil {
			return err
		}
		if n, ok := v.(int); !ok || n != messages {
			return fmt.Errorf("echo handled %v messages, want %d", v, messages)
		}
		ctx.Deref(replies)
		return pingResult{messages: messages, sum: sum}
	}
}

func runPingPong(ctx context.Context, e env) error {
	v, err := spawn(ctx, e, pingPong(e.cfg.Runtime.ChannelCapacity, e.cfg.Demo.Messages), nil)
	if err != nil {
		return err
	}
	r := v.(pingResult)
	fmt.Fprintf(e.out, "pingpong: %d messages, sum %d\n", r.messages, r.sum)
	return nil
}

func producer(ctx *kernel.Context, arg any, ch *kernel.Channel) any {
	for i := 0; i < arg.(int); i++ {
		if err := ctx.Send(ch, i); err != nil {
			return err
		}
		ctx.Yield(kernel.NoThread)
	}
	return nil
}

func fanIn(capacity, producers, messages int) kernel.Entry {
	return func(ctx *kernel.Context, _ any, _ *kernel.Channel) any {
		g := kernel.NewGroup()
		chans := make([]*kernel.Channel, producers)
		hs := make([]kernel.Handle, producers)
		for i := range chans {
			ch := ctx.NewChannel(capacity)
			ch.SetMark(i)
			if err := g.Add(ch); err != nil {
				return err
			}
			chans[i] = ch
			hs[i] = ctx.Create(producer, messages, kernel.Flags{}, ch)
		}

		counts := make([]int, producers)
		for n := 0; n < producers*messages; n++ {
			ch := ctx.Wait(g)
			ctx.Recv(ch)
			counts[ch.Mark().(int)]++
		}

		for i, h := range hs {
			if v, err := ctx.Join(h); err != nil || v != nil {
				return fmt.Errorf("producer %d: %v %v", i, v, err)
			}
			if err := g.Remove(chans[i]); err != nil {
				return err
			}
			ctx.Deref(chans[i])
		}
		if err := g.Free(); err != nil {
			return err
		}
		return counts
	}
}

func runFanIn(ctx context.Context, e env) error {
	producers := e.cfg.Demo.Anchors + 1
	v, err := spawn(ctx, e, fanIn(e.cfg.Runtime.ChannelCapacity, producers, e.cfg.Demo.Messages), nil)
	if err != nil {
		return err
	}
	for i, n := range v.([]int) {
		fmt.Fprintf(e.out, "fanin: channel %d delivered %d\n", i, n)
	}
	return nil
}

func reap(ctx *kernel.Context, arg any, _ *kernel.Channel) any {
	for i := 0; i < arg.(int); i++ {
		ctx.Create(func(*kernel.Context, any, *kernel.Channel) any { return nil }, nil, kernel.Flags{NoJoin: true}, nil)
	}
	ctx.Yield(kernel.NoThread)
	before := ctx.Info(kernel.QueueZombies)

	h := ctx.Create(func(*kernel.Context, any, *kernel.Channel) any { return nil }, nil, kernel.Flags{}, nil)
	if _, err := ctx.Join(h); err != nil {
		return err
	}
	return [2]int{before, ctx.Info(kernel.QueueZombies)}
}

func runReap(ctx context.Context, e env) error {
	v, err := spawn(ctx, e, reap, e.cfg.Demo.Anchors+1)
	if err != nil {
		return err
	}
	z := v.([2]int)
	fmt.Fprintf(e.out, "reap: zombies %d before, %d after gc\n", z[0], z[1])
	return nil
}

func runAnchors(ctx context.Context, e env) error {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]pingResult, e.cfg.Demo.Anchors)
	for i := range results {
		i := i
		g.Go(func() error {
			v, err := spawn(ctx, e, pingPong(e.cfg.Runtime.ChannelCapacity, e.cfg.Demo.Messages+i), nil)
			if err != nil {
				return err
			}
			results[i] = v.(pingResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, r := range results {
		fmt.Fprintf(e.out, "anchors: anchor %d: %d messages, sum %d\n", i, r.messages, r.sum)
	}
	return nil
}
