package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/image"
)

func main() {
	conf, err := LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}
	level, _ := log.ParseLevel(conf.LogLevel)
	log.SetLevel(level)

	router, err := conf.Router()
	if err != nil {
		log.Fatalf("configuring image storage: %v", err)
	}

	sh := shell{
		img:  image.New(router),
		conf: conf,
		in:   os.Stdin,
		out:  os.Stdout,
	}
	if err := sh.app().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
