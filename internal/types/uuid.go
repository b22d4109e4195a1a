package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex quote_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `Q-XYZ12A8Q`.
// Used for human-facing quote and ticket numbers.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_SERVICE          = "svc"
	UUID_PREFIX_PRODUCT          = "prod"
	UUID_PREFIX_CUSTOMER         = "cust"
	UUID_PREFIX_VEHICLE          = "veh"
	UUID_PREFIX_COUPON           = "coupon"
	UUID_PREFIX_QUOTE            = "quote"
	UUID_PREFIX_TICKET           = "tix"
	UUID_PREFIX_LINE_ITEM        = "line"
	UUID_PREFIX_MANUAL_DISCOUNT  = "disc"
	UUID_PREFIX_LOYALTY_MOVEMENT = "loyal"
	UUID_PREFIX_SESSION          = "sess"

	SHORT_ID_PREFIX_QUOTE  = "Q-"
	SHORT_ID_PREFIX_TICKET = "T-"
)
