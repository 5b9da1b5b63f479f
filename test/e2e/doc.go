/*
Package e2e holds the end-to-end suite for handoff.

The suite boots complete in-process instances (controller, host tick loop,
gin server with authentication) on random local ports and drives them through
pkg/client, the same client the "handoff submit" command uses.

# Package Structure

	test/e2e/
	├── doc.go           This file
	├── e2e_suite_test.go Ginkgo runner
	├── e2e_test.go      Specs: submission, results, throttling, auth, shutdown
	└── infra/
	    └── infra.go     Stack: starts and stops an instance, mints tokens

# Running

	go test ./test/e2e/...

# Stack

	stack, err := infra.StartStack(cfg)
	defer stack.Stop()

	token, _ := stack.GenerateToken("e2e", time.Hour)
	c, _ := client.NewClient(stack.URL(), client.WithBearerToken(token))
*/
package e2e
