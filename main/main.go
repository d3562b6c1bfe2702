package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/loaf"
	"github.com/rawbytedev/loaf/internal/common"
	"github.com/rawbytedev/loaf/pkg/loafwire"
)

func main() {
	config := flag.String("config", "", "YAML file with loafwire options")
	profile := flag.String("memprofile", "mem.prof", "heap profile output")
	rounds := flag.Int("rounds", 10000, "encode/decode rounds")
	flag.Parse()

	log := common.Logger()
	log.SetLevel(logrus.InfoLevel)

	opts := loafwire.Options{ZeroCopy: true, CheckAlignment: true}
	if *config != "" {
		var err error
		opts, err = loafwire.LoadOptions(*config)
		if err != nil {
			log.WithError(err).Fatal("load options")
		}
	}
	log.WithFields(logrus.Fields{
		"zero_copy":   opts.ZeroCopy,
		"compression": opts.Compression,
		"rounds":      *rounds,
	}).Info("starting")

	f, err := os.Create(*profile)
	if err != nil {
		log.WithError(err).Fatal("create profile")
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	v := loaf.NewVec[float64](100.5, 165.63, 153.5)
	for i := 0; i < 64; i++ {
		v.Push(float64(i) * 1.5)
	}

	var sum float64
	for i := 0; i < *rounds; i++ {
		data, err := loafwire.Encode(v.Loaf(), opts)
		if err != nil {
			log.WithError(err).Fatal("encode")
		}
		res, err := loafwire.Decode[loaf.One, float64](data, opts)
		if err != nil {
			log.WithError(err).Fatal("decode")
		}
		first, rest := res.SplitFirst()
		sum += first + res.Last() + float64(len(rest))
	}
	log.WithField("checksum", sum).Info("done")

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.WithError(err).Error("write heap profile")
	}
}
