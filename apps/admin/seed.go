package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) seed(force bool) error {
	ctx := context.Background()
	if force {
		if err := cli.seeder.Seed(ctx); err != nil {
			return err
		}
		fmt.Println("Demo data reset.")
		return nil
	}
	seeded, err := cli.seeder.EnsureSeeded(ctx)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Println("Demo data written.")
	} else {
		fmt.Println("Already seeded, use -force to reset.")
	}
	return nil
}
