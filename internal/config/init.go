package config

import (
	"os"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
)

const initTemplate = `# aepsite configuration. Values support ${ENV} expansion; AEP_LOCATION,
# AEP_LINTER_LOC and AEP_COMPONENTS_LOC override the source paths.
sources:
  aep:
    path: ../aep
  linter:
    path: ../api-linter
  components:
    # url: https://github.com/aep-dev/aep-components.git
    # branch: main
    path: ../aep-components
  # Published as tooling/website when the linter source is present.
  website: README.md

# The edition with folder "." reads aep/general and is written at the site root.
editions:
  - name: general
    folder: "."

output:
  root: .
  content_dir: src/content/docs
  generated_dir: generated
  public_dir: public
  assets_dir: src/assets/generated
  state_db: .aepsite/state.db

rewrite:
  inline_samples: false

export:
  llms_prefix: AEP
  llms_file: llms.txt

build:
  workers: 4

preview:
  listen: 127.0.0.1:4322
  debounce: 300ms
  refresh: 10m

# notify:
#   url: nats://127.0.0.1:4222
#   subject: aepsite.build.completed

# metrics:
#   textfile: /var/lib/node_exporter/aepsite.prom

logging:
  level: info
  format: text
`

// Init writes an annotated configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	if err := os.WriteFile(path, []byte(initTemplate), 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").
			WithContext("path", path).WithContext("error", err.Error()).Build()
	}
	return nil
}
