// Command trellis validates a training manifest and optionally prints the
// effective configuration or archives a snapshot of it.
//
//	trellis -config uresnet.yaml
//	trellis -config uresnet.yaml -dump json
//	trellis -config uresnet.yaml -snapshot 'runs/config-{{timestamp}}.json'
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/voxelml/trellis"
	"github.com/voxelml/trellis/manifest"
)

func main() {
	configPath := flag.String("config", "", "path to the training manifest (required)")
	dumpFormat := flag.String("dump", "", "print the effective config: yaml or json")
	snapshotPath := flag.String("snapshot", "", "write a snapshot of the resolved config ({{timestamp}} expands)")
	envPrefix := flag.String("env-prefix", "SPINE_", "prefix for environment variable overrides")
	flag.Parse()

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := manifest.LoadWithEnv(context.Background(), *configPath, *envPrefix)
	if err != nil {
		var valErr *trellis.ValidationError
		if errors.As(err, &valErr) {
			for _, fe := range valErr.FieldErrors {
				log.WithFields(log.Fields{"key": fe.FieldPath, "code": fe.Code}).Error(fe.Message)
			}
			log.WithFields(log.Fields{"config": *configPath, "errors": len(valErr.FieldErrors)}).
				Fatal("Manifest validation failed")
		}
		log.WithFields(log.Fields{"config": *configPath, "err": err}).Fatal("Loading manifest")
	}

	log.WithFields(log.Fields{
		"config":     *configPath,
		"model":      cfg.StringOr("model.name", ""),
		"dataset":    cfg.StringOr("io.loader.dataset.name", ""),
		"batch_size": cfg.IntOr("io.loader.batch_size", 0),
		"optimizer":  cfg.StringOr("base.train.optimizer.name", ""),
	}).Info("Manifest OK")

	switch *dumpFormat {
	case "":
	case "yaml":
		if err := trellis.Dump(os.Stdout, cfg); err != nil {
			log.WithFields(log.Fields{"err": err}).Fatal("Dumping config")
		}
	case "json":
		if err := trellis.Dump(os.Stdout, cfg, trellis.AsJSON()); err != nil {
			log.WithFields(log.Fields{"err": err}).Fatal("Dumping config")
		}
	default:
		log.WithFields(log.Fields{"format": *dumpFormat}).Fatal("Unknown dump format")
	}

	if *snapshotPath != "" {
		snap, err := trellis.CreateSnapshot(cfg)
		if err != nil {
			log.WithFields(log.Fields{"err": err}).Fatal("Creating snapshot")
		}
		if err := trellis.WriteSnapshot(snap, *snapshotPath); err != nil {
			log.WithFields(log.Fields{"path": *snapshotPath, "err": err}).Fatal("Writing snapshot")
		}
		log.WithFields(log.Fields{
			"path": trellis.ExpandPathWithTime(*snapshotPath, snap.Timestamp),
		}).Info("Snapshot written")
	}
}
