package main

import "github.com/hydrawallet/wallet-core/cmd"

func main() {
	cmd.Execute()
}
