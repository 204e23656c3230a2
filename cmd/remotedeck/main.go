// Command remotedeck serves a workspace of control panels to remote
// clients and performs the bound actions on this machine.
package main

func main() {
	Execute()
}
