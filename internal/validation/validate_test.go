package validation

import (
	"strings"
	"testing"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name      string
		bucket    string
		wantError bool
		errMsg    string
	}{
		// Valid bucket names
		{"valid_simple", "my-bucket", false, ""},
		{"valid_with_numbers", "my-bucket123", false, ""},
		{"valid_with_hyphens", "my-bucket-name", false, ""},
		{"valid_min_length", "abc", false, ""},
		{"valid_max_length", strings.Repeat("a", 63), false, ""},

		// Invalid bucket names
		{"empty", "", true, "bucket name cannot be empty"},
		{"too_short", "ab", true, "bucket name must be between 3 and 63 characters long"},
		{
			"too_long",
			strings.Repeat("a", 64),
			true,
			"bucket name must be between 3 and 63 characters long",
		},
		{
			"starts_with_hyphen",
			"-bucket",
			true,
			"bucket name cannot start or end with a hyphen",
		},
		{
			"ends_with_hyphen",
			"bucket-",
			true,
			"bucket name cannot start or end with a hyphen",
		},
		{
			"contains_uppercase",
			"UPPER",
			true,
			"bucket name can only contain lowercase letters, numbers, and hyphens",
		},
		{
			"contains_underscore",
			"my_bucket",
			true,
			"bucket name can only contain lowercase letters, numbers, and hyphens",
		},
		{
			"contains_dot",
			"my.bucket",
			true,
			"bucket name can only contain lowercase letters, numbers, and hyphens",
		},
		{
			"contains_space",
			"my bucket",
			true,
			"bucket name can only contain lowercase letters, numbers, and hyphens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateBucketName(%q) expected error, got nil", tt.bucket)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateBucketName(%q) error = %q, want to contain %q", tt.bucket, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateBucketName(%q) expected no error, got %q", tt.bucket, err)
				}
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	tests := []struct {
		name      string
		region    string
		wantError bool
		errMsg    string
	}{
		// Valid regions
		{"valid_simple", "weifang", false, ""},
		{"valid_with_hyphen", "my-region", false, ""},
		{"valid_with_numbers", "region9", false, ""},

		// Invalid regions
		{"empty", "", true, "region cannot be empty"},
		{"starts_with_hyphen", "-region", true, "region cannot start or end with a hyphen"},
		{"ends_with_hyphen", "region-", true, "region cannot start or end with a hyphen"},
		{"reserved_prefix", "ossregion", true, `region cannot start with the reserved prefix "oss"`},
		{"reserved_exact", "oss", true, `region cannot start with the reserved prefix "oss"`},
		{
			"contains_uppercase",
			"Region",
			true,
			"region can only contain lowercase letters, numbers, and hyphens",
		},
		{
			"contains_underscore",
			"my_region",
			true,
			"region can only contain lowercase letters, numbers, and hyphens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegion(tt.region)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateRegion(%q) expected error, got nil", tt.region)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateRegion(%q) error = %q, want to contain %q", tt.region, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateRegion(%q) expected no error, got %q", tt.region, err)
				}
			}
		})
	}
}

func TestValidateObjectPath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError bool
		errMsg    string
	}{
		// Valid object paths
		{"valid_simple", "my-file.txt", false, ""},
		{"valid_with_path", "folder/subfolder/file.txt", false, ""},
		{"valid_unicode", "файл.txt", false, ""},
		{"valid_numbers", "file123.txt", false, ""},
		{"valid_spaces", "file with spaces.txt", false, ""},

		// Invalid object paths
		{"empty", "", true, "object path cannot be empty"},
		{"leading_slash", "/etc/passwd", true, "object path cannot start with a slash"},
		{"leading_dot", ".hidden", true, "object path cannot start with a dot"},
		{"leading_dot_dot", "../secret.txt", true, "object path cannot start with a dot"},
		{"trailing_slash", "folder/", true, "object path cannot end with a slash"},
		{
			"backslash",
			`folder\file.txt`,
			true,
			"object path cannot contain backslashes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectPath(tt.path)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateObjectPath(%q) expected error, got nil", tt.path)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateObjectPath(%q) error = %q, want to contain %q", tt.path, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateObjectPath(%q) expected no error, got %q", tt.path, err)
				}
			}
		})
	}
}

func TestValidateObjectDir(t *testing.T) {
	tests := []struct {
		name      string
		dir       string
		wantError bool
		errMsg    string
	}{
		// Valid dirs
		{"valid_simple", "photos/", false, ""},
		{"valid_nested", "photos/2024/", false, ""},

		// Invalid dirs
		{"empty", "", true, "object dir cannot be empty"},
		{"leading_slash", "/photos/", true, "object dir cannot start with a slash"},
		{"leading_dot", "./photos/", true, "object dir cannot start with a dot"},
		{"missing_trailing_slash", "photos", true, "object dir must end with a slash"},
		{"backslash", `photos\2024/`, true, "object dir cannot contain backslashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectDir(tt.dir)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateObjectDir(%q) expected error, got nil", tt.dir)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateObjectDir(%q) error = %q, want to contain %q", tt.dir, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateObjectDir(%q) expected no error, got %q", tt.dir, err)
				}
			}
		})
	}
}

func TestValidateAccessKey(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		secret    string
		wantError bool
		errMsg    string
	}{
		{"valid", "key_id", "key_secret", false, ""},
		{"empty_id", "", "key_secret", true, "access key id cannot be empty"},
		{"empty_secret", "key_id", "", true, "access key secret cannot be empty"},
		{"both_empty", "", "", true, "access key id cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccessKey(tt.id, tt.secret)
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateAccessKey(%q, secret) expected error, got nil", tt.id)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateAccessKey(%q, secret) error = %q, want to contain %q", tt.id, err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateAccessKey(%q, secret) expected no error, got %q", tt.id, err)
				}
			}
		})
	}
}
