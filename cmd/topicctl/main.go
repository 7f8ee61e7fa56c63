// Command topicctl is a small operator CLI for toggling topics and running ad-hoc
// trend queries against the discovery core's data files, without standing up the
// HTTP façade (spec §6).
package main

func main() {
	Execute()
}
