package main

import (
	"flag"
	"fmt"

	"github.com/fogbird/seedmix/libs/chclient"

	log "github.com/sirupsen/logrus"
)

var endpoint string

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: false,
	})
	log.SetLevel(log.DebugLevel)
	flag.StringVar(&endpoint, "endpoint", "https://challenge.fogbird.io/api/verify", "verification endpoint URL")
	flag.Parse()

	client := chclient.NewClient(endpoint, "seedmix-verify")
	code, err := client.GetVerificationCode()
	if err != nil {
		log.Errorln("cannot fetch verification code:", err)
		return
	}
	log.Infoln("got verification code", string(code))
	// the server does not promise the same response for the same code
	// across runs, so just print whatever came back as text
	body, ctype, err := client.SubmitVerificationCode(code)
	if err != nil {
		log.Errorln("cannot submit verification code:", err)
		return
	}
	log.Debugln("response content-type:", ctype)
	fmt.Println(body)
}
