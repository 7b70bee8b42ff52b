package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toga/internal/domain"
)

// VerifyCmd checks an identifier against the backend without starting the kiosk
type VerifyCmd struct {
	Format     string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Identifier string `arg:"" help:"Cédula to verify"`
}

// Run executes the verify command
func (v *VerifyCmd) Run(cli *CLI) error {
	id, err := domain.NormalizeIdentifier(v.Identifier)
	if err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()
	res, err := cli.Container.API.Verify(ctx, id)
	cli.Container.AttemptService.Record(ctx, domain.Attempt{
		Duration:   time.Since(start),
		ErrorKind:  domain.KindOf(err),
		Identifier: id,
		Kind:       domain.AttemptVerify,
		Outcome:    domain.VerifyOutcome(res, err),
	})
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return err
	}

	found := err == nil && res.Exists && res.User != nil
	if v.Format == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"exists":     found,
			"identifier": id,
			"user":       res.User,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if !found {
		fmt.Println(domain.MsgNotFound)
		return nil
	}
	fmt.Printf("Cédula: %s\n", id)
	fmt.Printf("Nombre: %s\n", res.User.Name)
	fmt.Printf("Carrera: %s\n", res.User.Career)
	if res.User.Email != "" {
		fmt.Printf("Email: %s\n", res.User.Email)
	}
	return nil
}
