package etl

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/BartekS5/personbatch/pkg/models"
	"github.com/BartekS5/personbatch/pkg/utils"
)

// Optional schema prefix, then a plain identifier.
var identifierPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*\.)?[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTableName rejects anything that is not a bare identifier, since
// the table name is interpolated into the INSERT statement.
func ValidateTableName(table string) error {
	if !identifierPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

// ValidateFieldNames checks that each record field is mapped exactly once.
func ValidateFieldNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		switch n {
		case models.FieldFirstName, models.FieldLastName:
		default:
			return fmt.Errorf("unknown field name %q", n)
		}
		if seen[n] {
			return fmt.Errorf("field name %q mapped twice", n)
		}
		seen[n] = true
	}
	if len(seen) != len(models.DefaultFieldNames) {
		return fmt.Errorf("field names must be %v in some order, got %v", models.DefaultFieldNames, names)
	}
	return nil
}

// ValidateDefinition checks a merged job definition before anything is
// opened or connected.
func ValidateDefinition(def *models.JobDefinition) error {
	var errs []error
	if def.Name == "" {
		errs = append(errs, errors.New("job name must not be empty"))
	}
	if def.Input.Path == "" {
		errs = append(errs, errors.New("input path must not be empty"))
	}
	if _, err := utils.ParseDelimiter(def.Input.Delimiter); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateFieldNames(def.Input.Names); err != nil {
		errs = append(errs, err)
	}
	if def.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", def.ChunkSize))
	}
	if err := ValidateTableName(def.Table); err != nil {
		errs = append(errs, err)
	}
	if _, err := ProcessorByName(def.Processor); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
