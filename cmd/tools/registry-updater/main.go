// cmd/tools/registry-updater/main.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	app := &cli.App{
		Name:  "registry-updater",
		Usage: "Maintain the activity registry describing the search workers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Path to registry file",
				Value:   defaultRegistryPath,
				EnvVars: []string{"REGISTRY_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a new activity to the registry",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Activity ID (e.g., resolve-keywords)", Required: true},
					&cli.StringFlag{Name: "displayName", Usage: "Display Name (e.g., Resolve Keywords)", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Description", Required: true},
					&cli.StringFlag{Name: "category", Usage: "Category (e.g., search)", Value: "search"},
					&cli.StringFlag{Name: "taskType", Usage: "Camunda Task Type, defaults to the ID"},
					&cli.StringFlag{Name: "version", Value: "1.0.0"},
					&cli.StringFlag{Name: "status", Usage: "planned, in-progress, completed, verified", Value: "planned"},
					&cli.StringFlag{Name: "timeout", Value: "10s"},
				},
			},
			{
				Name:   "update",
				Usage:  "Update an existing activity's field",
				Action: updateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Activity ID to update", Required: true},
					&cli.StringFlag{Name: "field", Usage: "Field to update (status, version, etc.)", Required: true},
					&cli.StringFlag{Name: "value", Usage: "New value for the field", Required: true},
				},
			},
			{
				Name:   "validate",
				Usage:  "Validate the registry file and compile every input schema",
				Action: validateCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func addCommand(c *cli.Context) error {
	path := c.String("path")
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	taskType := c.String("taskType")
	if taskType == "" {
		taskType = c.String("id")
	}

	activity := registry.Activity{
		ID:                   c.String("id"),
		DisplayName:          c.String("displayName"),
		Description:          c.String("description"),
		Category:             c.String("category"),
		Version:              c.String("version"),
		TaskType:             taskType,
		ImplementationStatus: c.String("status"),
		InputSchema:          map[string]interface{}{"type": "object"},
		OutputSchema:         map[string]interface{}{"type": "object"},
		ErrorCodes:           []string{},
		Timeout:              c.String("timeout"),
		Workflows:            []string{},
		Tags:                 []string{},
	}
	if err := reg.Add(activity); err != nil {
		return err
	}
	if err := reg.Save(path); err != nil {
		return err
	}

	fmt.Printf("Added activity: %s\n", activity.ID)
	return nil
}

func updateCommand(c *cli.Context) error {
	path := c.String("path")
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	id, field, value := c.String("id"), c.String("field"), c.String("value")
	if err := setField(reg, id, field, value); err != nil {
		return err
	}
	if err := reg.Save(path); err != nil {
		return err
	}

	fmt.Printf("Updated activity %s, field %s to %s\n", id, field, value)
	return nil
}

func setField(reg *registry.ActivityRegistry, id, field, value string) error {
	for i := range reg.Activities {
		a := &reg.Activities[i]
		if a.ID != id {
			continue
		}
		switch field {
		case "status":
			a.ImplementationStatus = value
		case "version":
			a.Version = value
		case "displayName":
			a.DisplayName = value
		case "description":
			a.Description = value
		case "category":
			a.Category = value
		case "taskType":
			a.TaskType = value
		case "timeout":
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid timeout value: %w", err)
			}
			a.Timeout = value
		case "retries":
			retries, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid retries value: %w", err)
			}
			a.Retries = retries
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		return nil
	}
	return fmt.Errorf("activity with ID %s not found", id)
}

func validateCommand(c *cli.Context) error {
	reg, err := registry.LoadRegistry(c.String("path"))
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}

	v, err := validation.NewValidator(reg)
	if err != nil {
		return fmt.Errorf("schema compilation failed: %w", err)
	}

	fmt.Printf("Registry validation passed. Found %d activities, %d with input schemas.\n",
		len(reg.Activities), len(v.TaskTypes()))
	return nil
}
