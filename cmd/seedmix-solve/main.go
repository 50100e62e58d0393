package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os/user"

	"github.com/vharitonsky/iniflags"

	"github.com/fogbird/seedmix/libs/chclient"
	"github.com/fogbird/seedmix/libs/xorshift"

	log "github.com/sirupsen/logrus"
)

var endpoint string
var useragent string

// GitVersion is the build version
var GitVersion string

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: false,
		ForceColors:   true,
	})
	log.SetLevel(log.DebugLevel)

	// configfile path
	usr, err := user.Current()
	if err != nil {
		log.Println("cannot read current user info, consider using -config=/path/to/cfgfile")
	} else {
		// default config file: $HOME/.config/seedmix.conf
		// use -config=/path/to/cfgfile to override
		iniflags.SetConfigFile(usr.HomeDir + "/.config/seedmix.conf")
		iniflags.SetAllowMissingConfigFile(true)
	}

	flag.StringVar(&endpoint, "endpoint", "https://challenge.fogbird.io/api/prng", "challenge endpoint URL")
	flag.StringVar(&useragent, "useragent", "seedmix-solve", "user agent sent to the challenge server")
	iniflags.Parse()
	if GitVersion != "" {
		log.Infof("seedmix-solve %v", GitVersion)
	}

	client := chclient.NewClient(endpoint, useragent)
	ch, err := client.GetChallenge()
	if err != nil {
		log.Errorln("cannot fetch challenge:", err)
		return
	}
	log.Infof("got challenge uid=%v initialSeed=%v", string(ch.UID), ch.InitialSeed)
	generated := xorshift.Sequence(ch.InitialSeed, chclient.SequenceLen)
	body, err := client.SubmitSequence(ch.UID, generated)
	if err != nil {
		log.Errorln("cannot submit sequence:", err)
		return
	}
	printResponse(body)
}

// printResponse pretty-prints the body if it parses as JSON, and dumps it
// unmodified if it does not.
func printResponse(body string) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		fmt.Println(body)
		return
	}
	fmt.Println(buf.String())
}
