// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"employee-query-workers/internal/common/validation"
	"employee-query-workers/pkg/registry"
)

const defaultRegistryPath = "pkg/registry/activity-registry.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	switch command {
	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		id := fs.String("id", "", "Activity ID (e.g., parse-query-intent)")
		displayName := fs.String("displayName", "", "Display Name (e.g., Parse Query Intent)")
		description := fs.String("description", "", "Description")
		category := fs.String("category", "employee-query", "Category")
		taskType := fs.String("taskType", "", "Zeebe task type (defaults to id)")
		version := fs.String("version", "1.0.0", "Version")
		status := fs.String("status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
		_ = fs.Parse(args)

		if *id == "" || *displayName == "" {
			fs.Usage()
			return fmt.Errorf("id and displayName are required for add")
		}
		if *taskType == "" {
			*taskType = *id
		}
		if err := addActivity(*path, registry.Activity{
			ID:                   *id,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *status,
		}); err != nil {
			return err
		}
		fmt.Printf("Added activity %s\n", *id)

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		id := fs.String("id", "", "Activity ID to update")
		field := fs.String("field", "", "Field to update (status, version, etc.)")
		value := fs.String("value", "", "New value for the field")
		_ = fs.Parse(args)

		if *id == "" || *field == "" {
			fs.Usage()
			return fmt.Errorf("id and field are required for update")
		}
		if err := updateActivity(*path, *id, *field, *value); err != nil {
			return err
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		_ = fs.Parse(args)

		reg, err := registry.LoadRegistry(*path)
		if err != nil {
			return err
		}
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "check":
		fs := flag.NewFlagSet("check", flag.ExitOnError)
		path := fs.String("path", "", "Path to registry file (empty uses the embedded registry)")
		taskType := fs.String("taskType", "", "Task type whose input schema is checked")
		vars := fs.String("vars", "{}", "Job variables as JSON")
		_ = fs.Parse(args)

		result, err := checkVariables(*path, *taskType, *vars)
		if err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("variables rejected: %s", result.Summary())
		}
		fmt.Println("Variables accepted.")

	default:
		help()
	}
	return nil
}

func addActivity(path string, activity registry.Activity) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	if _, exists := reg.Find(activity.TaskType); exists {
		return fmt.Errorf("activity with task type %s already exists", activity.TaskType)
	}
	reg.Activities = append(reg.Activities, activity)
	if err := reg.Validate(); err != nil {
		return err
	}

	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return registry.SaveRegistry(reg, path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var target *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			target = &reg.Activities[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		target.ImplementationStatus = value
	case "version":
		target.Version = value
	case "displayName":
		target.DisplayName = value
	case "description":
		target.Description = value
	case "category":
		target.Category = value
	case "taskType":
		target.TaskType = value
	case "timeout":
		target.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		target.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return registry.SaveRegistry(reg, path)
}

// checkVariables validates job variables against the input schema registered for taskType.
func checkVariables(path, taskType, vars string) (*validation.ValidationResult, error) {
	reg, err := registry.Load(path)
	if err != nil {
		return nil, err
	}
	activity, ok := reg.Find(taskType)
	if !ok {
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}
	return validation.ValidateJSON(vars, activity.InputSchema), nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  check    Validate job variables against an activity's input schema
  help     Show this help message

Examples:
  registry-updater add -id answer-employee-query -displayName "Answer Employee Query"
  registry-updater update -id query-employee-data -field timeout -value 10s
  registry-updater validate -path pkg/registry/activity-registry.json
  registry-updater check -taskType parse-query-intent -vars '{"query": "list all managers"}'

Use 'registry-updater <command> -h' for more information about a command.`)
}
