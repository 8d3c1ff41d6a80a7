package recommend

import "github.com/kailas-cloud/cinedex/internal/index"

// IndexProvider supplies the current immutable index snapshot.
type IndexProvider interface {
	Get() (*index.Index, bool)
}
