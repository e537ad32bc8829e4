// =============================================================================
// Post File Merger - Configuration Module
// =============================================================================
//
// This module loads the run configuration. Everything is optional: a run
// without a configuration file uses the defaults below, which reproduce the
// layout and alias tables of the production merge.
//
// CONFIGURATION AREAS:
//   1. Directory layout under the base directory (reference workbook, sender
//      workbook, Input/Output subdirectories)
//   2. Declarative alias tables mapping canonical output fields to the header
//      spellings seen across sender files
//   3. Output artifact naming
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the run configuration for one merge.
type Config struct {
	// =========================================================================
	// DIRECTORY LAYOUT (relative to the base directory)
	// =========================================================================

	// ReferenceFile is the pincode->city reference workbook.
	// Default: "PIN.xlsx"
	ReferenceFile string `yaml:"reference_file"`

	// ReferenceSheet is the preferred sheet inside the reference workbook.
	// When absent the first sheet is used instead.
	// Default: "TBLPINCITY"
	ReferenceSheet string `yaml:"reference_sheet"`

	// SenderFile is the sender metadata workbook, keyed by the
	// "File Name Contain" column.
	// Default: "Sender Address.xlsx"
	SenderFile string `yaml:"sender_file"`

	// InputDir is the subdirectory holding the files to merge.
	// Default: "Input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the subdirectory receiving the merged artifact.
	// Created on demand. Default: "Output"
	OutputDir string `yaml:"output_dir"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputPattern names the merged artifact. Placeholders:
	//   {date} - current date as DDMMYYYY
	//   {uuid} - a random UUID
	// Default: "Output-Post_File_{date}.xlsx"
	OutputPattern string `yaml:"output_pattern"`

	// LogFile, when set, receives a copy of every log line emitted during
	// the run in addition to the interactive sink.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// SCHEMA MAPPING
	// =========================================================================

	// FieldAliases maps each canonical output field to an " Or "-separated
	// list of acceptable input headers. Matching is case-insensitive on the
	// trimmed header; the first alias with a match wins.
	FieldAliases map[string]string `yaml:"field_aliases"`

	// AddressAliases lists, in the same format, every header that carries a
	// part of the destination address. All matching columns are concatenated
	// into the composite AddreADD1 field.
	AddressAliases string `yaml:"address_aliases"`

	// OutputColumns is the fixed column order of the merged artifact.
	OutputColumns []string `yaml:"output_columns"`
}

// Canonical field names referenced throughout the pipeline.
const (
	FieldSL         = "SL"
	FieldPincode    = "AddrePincode"
	FieldCity       = "AddreCity"
	FieldAddress    = "AddreADD1"
	FieldAddress2   = "Addre_ADD2"
	FieldAddress3   = "Addre_ADD3"
	FieldInputFile  = "Input File Name"
	FieldSheetName  = "Sheet Name"
	SenderKeyColumn = "File Name Contain"
)

// defaultFieldAliases reproduces the header spellings observed across the
// sender systems. The " Or " delimiter is part of the declarative format.
var defaultFieldAliases = map[string]string{
	"SL":           "SL Or sr Or srno Or SR. NO. Or sr. no.",
	"Barcode":      "Barcode Or Barcodes Or awb Or QR Post Or POD Or pod Or Bar code  Or Bar code",
	"REF":          "REF Or reference Or code Or Reference No. Or Ref.No. Or Notice Ref. No. Or ref_no Or Ref. No.",
	"AddrePincode": "AddrePincode Or CustAddrePincode Or CustAddrePincode Or Pincode Or Pin code Or Pin Or Pin.Code Or PIN CODE_DPM Or PIN_CODE",
	"AddreName":    "Name Or CustomerName Or name borower Or Customer Name Or CUSTOMER FULL NAME",
	"AddreCity":    "AddreCity Or CustAddreCity Or City Or district Or Dist_ Or CUSTADR_CITY Or DISTRICT Or DISTRICT_DPM",
}

// defaultAddressAliases lists every known header carrying an address part.
var defaultAddressAliases = "add 1 Or add 2 Or add 3 Or add_1 Or add_2 Or add_3 Or add1 Or add2 Or add3 Or CustAddreADD1 Or CustAddre_ADD2 Or CustAddre_ADD3 Or State Or Customeradd1 Or Customeradd2 Or Customeradd3 Or Customeradd4 Or address1 Or address2 Or address3 Or address4 Or Address Or Customer Address Or Add_1 Or add Or ADD1 Or ADD2 Or CUSTOMER ADDRESS 1 Or CUSTOMER ADDRESS 2 Or add_1 Or CUSTOMER_ADDRESS Or ADDRESS"

// defaultOutputColumns is the fixed artifact schema, in order.
var defaultOutputColumns = []string{
	"SL", "Barcode", "REF", "SenderCity", "SenderPincode", "SenderName", "SenderADD1",
	"SenderADD2", "SenderADD3", "AddreCity", "AddrePincode", "AddreName", "AddreADD1",
	"Addre_ADD2", "Addre_ADD3", "ADDREMAIL", "ADDRMOBILE", "SENDERMOBILE", "Weight",
	"InsVal", "PrPdAmount", "PrPdType", "FMLisenceId", "FMSomNo", "Input File Name", "Sheet Name",
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file and fills any unset field with its
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.ReferenceFile == "" {
		cfg.ReferenceFile = "PIN.xlsx"
	}
	if cfg.ReferenceSheet == "" {
		cfg.ReferenceSheet = "TBLPINCITY"
	}
	if cfg.SenderFile == "" {
		cfg.SenderFile = "Sender Address.xlsx"
	}
	if cfg.InputDir == "" {
		cfg.InputDir = "Input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "Output"
	}
	if cfg.OutputPattern == "" {
		cfg.OutputPattern = "Output-Post_File_{date}.xlsx"
	}
	if len(cfg.FieldAliases) == 0 {
		cfg.FieldAliases = defaultFieldAliases
	}
	if cfg.AddressAliases == "" {
		cfg.AddressAliases = defaultAddressAliases
	}
	if len(cfg.OutputColumns) == 0 {
		cfg.OutputColumns = defaultOutputColumns
	}
}
