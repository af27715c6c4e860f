package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/danmuck/eppctl/internal/config"
	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/extension/namestore"
	"github.com/danmuck/eppctl/internal/epp/message"
	"github.com/danmuck/eppctl/internal/journal"
	"github.com/danmuck/eppctl/internal/observability"
	"github.com/danmuck/eppctl/internal/protocol/session"
)

var helloCLICommand = cli.Command{
	Name:  "hello",
	Usage: "connect, print the server greeting and disconnect",
	Action: func(c *cli.Context) error {
		return withSession(c, false, func(ctx context.Context, s *session.Session) error {
			g, err := s.Hello(ctx)
			if err != nil {
				return err
			}
			out := c.App.Writer
			fmt.Fprintf(out, "server:     %s\n", g.ServerID)
			fmt.Fprintf(out, "date:       %s\n", g.ServerDate.UTC().Format(time.RFC3339))
			fmt.Fprintf(out, "versions:   %s\n", strings.Join(g.ServiceMenu.Versions, " "))
			fmt.Fprintf(out, "objects:    %s\n", strings.Join(g.ServiceMenu.ObjectURIs, " "))
			fmt.Fprintf(out, "extensions: %s\n", strings.Join(g.ServiceMenu.ExtensionURIs, " "))
			return nil
		})
	},
}

var checkCLICommand = cli.Command{
	Name:      "check",
	Usage:     "check domain name availability",
	ArgsUsage: "<domain> [domain...]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "namestore",
			Usage: "attach a namestore sub-product `CODE` (e.g. dotCOM)",
		},
	},
	Action: func(c *cli.Context) error {
		args := c.Args()
		if !args.Present() {
			return errors.New("missing domain, should at least provide one")
		}
		names := make([]string, 0, len(args))
		for _, raw := range args {
			n, err := domain.ToASCII(raw)
			if err != nil {
				return err
			}
			names = append(names, n)
		}

		return withSession(c, true, func(ctx context.Context, s *session.Session) error {
			req := domain.NewCheck(names...)
			if sub := c.String("namestore"); sub != "" {
				resp, err := session.Transact(ctx, s, namestore.Attach(req, sub), "")
				if err != nil {
					return err
				}
				return printCheck(c, resp.Data)
			}
			resp, err := session.Transact(ctx, s, req, "")
			if err != nil {
				return err
			}
			return printCheck(c, resp.Data)
		})
	},
}

var pollCLICommand = cli.Command{
	Name:  "poll",
	Usage: "read the oldest message in the service message queue",
	Action: func(c *cli.Context) error {
		return withSession(c, true, func(ctx context.Context, s *session.Session) error {
			resp, err := session.Transact(ctx, s, message.NewPoll(), "")
			if err != nil {
				return err
			}
			out := c.App.Writer
			q := resp.MessageQueue
			if resp.Code() == epp.CodeSuccessNoMessages || q == nil {
				fmt.Fprintln(out, "no messages")
				return nil
			}
			fmt.Fprintf(out, "message %s (%d queued)\n", q.ID, q.Count)
			if q.Date != nil {
				fmt.Fprintf(out, "date: %s\n", q.Date.UTC().Format(time.RFC3339))
			}
			if q.Message != "" {
				fmt.Fprintf(out, "msg:  %s\n", q.Message)
			}
			if resp.Data != nil && strings.TrimSpace(resp.Data.Inner) != "" {
				fmt.Fprintln(out, strings.TrimSpace(resp.Data.Inner))
			}
			return nil
		})
	},
}

var ackCLICommand = cli.Command{
	Name:      "ack",
	Usage:     "dequeue a service message",
	ArgsUsage: "<message-id>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return errors.New("ack takes exactly one message id")
		}
		id := c.Args().First()
		return withSession(c, true, func(ctx context.Context, s *session.Session) error {
			resp, err := session.Transact(ctx, s, message.NewAck(id), "")
			if err != nil {
				return err
			}
			remaining := 0
			if resp.MessageQueue != nil {
				remaining = resp.MessageQueue.Count
			}
			fmt.Fprintf(c.App.Writer, "acknowledged %s (%d remaining)\n", id, remaining)
			return nil
		})
	},
}

var journalCLICommand = cli.Command{
	Name:  "journal",
	Usage: "list recorded transactions, newest first",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "limit, n",
			Value: 20,
			Usage: "show at most `N` entries",
		},
	},
	Action: func(c *cli.Context) error {
		path, err := journalPath(c)
		if err != nil {
			return err
		}
		if path == "" {
			return errors.New("no journal configured; pass --journal or set journal in the config file")
		}
		store, err := journal.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(commandContext(c), c.Int("limit"))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tREGISTRY\tCOMMAND\tCLTRID\tCODE\tDURATION")
		for _, e := range entries {
			verb := e.Verb
			if e.Extension != "" {
				verb += "+" + e.Extension
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				e.StartedAt.UTC().Format(time.RFC3339), e.Registry, verb, e.ClientTRID, e.Code, e.Duration)
		}
		return w.Flush()
	},
}

func printCheck(c *cli.Context, data *domain.CheckData) error {
	if data == nil {
		return errors.New("check response carried no resData")
	}
	out := c.App.Writer
	for _, item := range data.Items {
		state := "available"
		if !item.Name.Available {
			state = "unavailable"
			if item.Reason != "" {
				state += " (" + item.Reason + ")"
			}
		}
		fmt.Fprintf(out, "%s\t%s\n", item.Name.Value, state)
	}
	return nil
}

func journalPath(c *cli.Context) (string, error) {
	if p := c.GlobalString("journal"); p != "" {
		return p, nil
	}
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return "", err
	}
	return cfg.Journal, nil
}

// withSession connects to the selected registry, optionally logs in, runs fn
// and logs out. Every transaction is journaled when a journal is configured.
func withSession(c *cli.Context, login bool, fn func(context.Context, *session.Session) error) error {
	ctx := commandContext(c)
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return err
	}
	reg, err := cfg.Select(c.GlobalString("registry"))
	if err != nil {
		return err
	}

	path := cfg.Journal
	if p := c.GlobalString("journal"); p != "" {
		path = p
	}
	var store *journal.Store
	if path != "" {
		store, err = journal.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var metrics *observability.Metrics
	if p := c.GlobalString("metrics-file"); p != "" {
		metrics = observability.NewMetrics()
		defer func() {
			if err := metrics.WriteTextfile(p); err != nil {
				log.Warn().Err(err).Str("path", p).Msg("eppctl: metrics write failed")
			}
		}()
	}

	s, err := session.Connect(ctx, reg.Address, reg.Session)
	if err != nil {
		return err
	}
	defer s.Close()

	var observers []session.Observer
	if store != nil {
		observers = append(observers, store.Observer(reg.Name))
	}
	if metrics != nil {
		observers = append(observers, metrics.Observer(reg.Name))
	}
	if len(observers) > 0 {
		s.SetObserver(session.Observers(observers...))
	}
	log.Debug().Str("registry", reg.Name).Str("address", reg.Address).Msg("eppctl: connected")

	if !login {
		return fn(ctx, s)
	}
	if _, err := s.Login(ctx, reg.Credentials, ""); err != nil {
		return err
	}
	runErr := fn(ctx, s)
	if s.State() == session.StateLoggedIn {
		if _, err := s.Logout(ctx, ""); err != nil {
			log.Warn().Err(err).Str("registry", reg.Name).Msg("eppctl: logout failed")
		}
	}
	return runErr
}
