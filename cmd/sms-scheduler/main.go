package main

import (
	"os"
	_ "time/tzdata"

	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
)

func main() {
	cmd := newRootCmd(smsprovider.NewTwilioProvider)
	os.Exit(execute(cmd))
}
