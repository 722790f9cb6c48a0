// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/background"
	"github.com/bitmark-inc/ipchaind/block"
	"github.com/bitmark-inc/ipchaind/genesis"
	"github.com/bitmark-inc/ipchaind/mode"
	"github.com/bitmark-inc/ipchaind/modules"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/publish"
	"github.com/bitmark-inc/ipchaind/reservoir"
	"github.com/bitmark-inc/ipchaind/rpc"
	"github.com/bitmark-inc/ipchaind/sealer"
	"github.com/bitmark-inc/ipchaind/storage"
	"github.com/bitmark-inc/ipchaind/zmqutil"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)
	log.Debugf("%s = %#v", "Sealing", theConfiguration.Sealing)
	log.Debugf("%s = %#v", "Runtime", theConfiguration.Runtime)

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(arguments, db) {
		return
	}

	ex := modules.NewExecutive(db, &theConfiguration.Runtime)

	// an empty database starts from the genesis file
	if !block.HasGenesis(db) {
		log.Infof("apply genesis: %q", theConfiguration.GenesisFile)
		g, err := genesis.Load(theConfiguration.GenesisFile, theConfiguration.Chain)
		if nil != err {
			log.Criticalf("genesis load error: %s", err)
			exitwithstatus.Message("genesis load: %q  error: %s", theConfiguration.GenesisFile, err)
		}
		header, err := ex.ApplyGenesis(g.Timestamp, g.Seed)
		if nil != err {
			log.Criticalf("genesis apply error: %s", err)
			exitwithstatus.Message("genesis apply error: %s", err)
		}
		log.Infof("genesis: %s", header.Hash())
	}
	if best, ok := ex.Best(); ok {
		log.Infof("best block: %d  hash: %s", best.Number, best.Hash())
	}

	// start the pool (verified extrinsics waiting for a block)
	log.Info("initialise reservoir")
	pool := reservoir.New(ex, theConfiguration.Pool.Maximum, theConfiguration.Pool.ExpiryPeriod())

	worker := portal.NewWorker(db, pool)
	ex.AddListener(worker)

	processes := background.Processes{
		pool,
		worker,
	}

	if theConfiguration.Sealing.Enabled {
		log.Infof("local sealing every: %s", theConfiguration.Sealing.Period())
		s, err := sealer.New(ex, pool, theConfiguration.Sealing.Period())
		if nil != err {
			log.Criticalf("sealer initialise error: %s", err)
			exitwithstatus.Message("sealer initialise error: %s", err)
		}
		processes = append(processes, s)
	}

	// log levels follow the configuration file
	watcher, err := newLevelWatcher(configurationFile, func() (map[string]string, error) {
		c, err := getConfiguration(configurationFile)
		if nil != err {
			return nil, err
		}
		return c.Logging.Levels, nil
	})
	if nil != err {
		log.Warnf("configuration watcher error: %s", err)
	} else {
		processes = append(processes, watcher)
	}

	// start up the publishing background processes
	if len(theConfiguration.Publishing.Broadcast) > 0 {
		err = zmqutil.StartAuthentication()
		if nil != err {
			log.Criticalf("zmq.AuthStart: error: %s", err)
			exitwithstatus.Message("zmq.AuthStart: error: %s", err)
		}

		err = publish.Initialise(&theConfiguration.Publishing, version)
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		defer publish.Finalise()

		ex.AddListener(publish.NewListener(db))
	}

	bg := background.Start(processes, nil)
	defer bg.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, ex, pool)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	mode.Set(mode.Normal)
	log.Infof("mode: %s", mode.String())

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
