// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command compose runs docker compose with arguments rendered by argv.
//
//	compose up --detach --pull=always web db
//	compose logs --follow --tail=100 web
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/exec"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argv/pkg/cmdutil"
)

type globalFlags struct {
	Project string `flag:"project" short:"p" help:"Compose project name"`
	File    string `flag:"file" help:"Compose file"`
	EnvFile string `flag:"env-file" help:"Environment file"`
	DryRun  bool   `flag:"dry-run" help:"Print the command instead of running it"`
	Yes     bool   `flag:"yes" short:"y" help:"Do not ask for confirmation"`
}

type upFlags struct {
	Detach  bool   `flag:"detach" short:"d" help:"Run in the background"`
	Build   bool   `flag:"build" help:"Build images before starting"`
	Wait    bool   `flag:"wait" help:"Wait for services to be healthy"`
	Timeout int    `flag:"timeout" help:"Shutdown timeout in seconds"`
	Pull    string `flag:"pull" help:"Pull policy: always, missing or never"`
}

type serviceArgs struct {
	Services []string `pos:"0*" help:"Services to act on"`
}

type logsFlags struct {
	Follow bool `flag:"follow" short:"f" help:"Follow output"`
	Tail   int  `flag:"tail" help:"Number of lines to show"`
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: compose up|logs [flags] [service...]")
	}
	var cmd *exec.Cmd
	var yes, dryRun bool
	switch args[0] {
	case "up":
		res, err := yargs.ParseWithCommand[globalFlags, upFlags, serviceArgs](args)
		if err != nil {
			return err
		}
		g, u := res.GlobalFlags, res.SubCommandFlags
		pull, err := parsePullPolicy(u.Pull)
		if err != nil {
			return err
		}
		up := Up{
			Detach:   u.Detach,
			Build:    u.Build,
			Wait:     u.Wait,
			Pull:     pull,
			Services: res.Args.Services,
		}
		if u.Timeout > 0 {
			up.Timeout = &u.Timeout
		}
		cmd = cmdutil.NewArgCmd("docker", g.compose(), up)
		yes, dryRun = g.Yes, g.DryRun
	case "logs":
		res, err := yargs.ParseWithCommand[globalFlags, logsFlags, serviceArgs](args)
		if err != nil {
			return err
		}
		g, l := res.GlobalFlags, res.SubCommandFlags
		if l.Tail < 0 || l.Tail > math.MaxUint16 {
			return fmt.Errorf("--tail %d out of range [0, %d]", l.Tail, math.MaxUint16)
		}
		logs := Logs{Follow: l.Follow, Services: res.Args.Services}
		if l.Tail > 0 {
			tail := TailLines(l.Tail)
			logs.Tail = &tail
		}
		cmd = cmdutil.NewArgCmd("docker", g.compose(), logs)
		// Reading logs changes nothing.
		yes, dryRun = true, g.DryRun
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}

	if dryRun {
		fmt.Fprintln(stdout, cmdutil.CommandLine(cmd))
		return nil
	}
	if !yes {
		ok, err := cmdutil.Confirm(stdin, stdout, "Run "+cmdutil.CommandLine(cmd)+"?")
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}
	return cmd.Run()
}

func (g globalFlags) compose() Compose {
	return Compose{
		Project: optional(g.Project),
		File:    optional(g.File),
		EnvFile: optional(g.EnvFile),
	}
}

func parsePullPolicy(s string) (PullPolicy, error) {
	switch s {
	case "":
		return nil, nil
	case "always":
		return PullAlways{}, nil
	case "missing":
		return PullMissing{}, nil
	case "never":
		return PullNever{}, nil
	}
	return nil, fmt.Errorf("invalid pull policy %q", s)
}
