// compileinfoprint is imported by methylage binaries for the side effect of
// printing their build revision to os.Stderr at startup.
package compileinfoprint

import (
	"os"

	"github.com/carbocation/methylage/compileinfo"
)

func init() {
	compileinfo.Fprint(os.Stderr)
}
