package tax

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okkersen/skatt/internal/domain"
)

// classResolver resolves tax class keys (by id or by name) against the
// class repository. The cache lives for exactly one calculation call, so a
// rule change between calls can never serve a stale name→id mapping.
type classResolver struct {
	repo  ClassRepository
	cache map[string]int
}

func newClassResolver(repo ClassRepository) *classResolver {
	return &classResolver{
		repo:  repo,
		cache: make(map[string]int),
	}
}

// resolve maps a class key to its numeric id. A nil key means the caller
// declared no class: ok is false and the item is non-taxable. A declared
// key that cannot be resolved is a hard error.
func (c *classResolver) resolve(ctx context.Context, typ domain.TaxClassType, key *domain.TaxClassKey) (id int, ok bool, err error) {
	const op = "tax.class.resolve"

	if key == nil {
		return 0, false, nil
	}

	cacheKey := fmt.Sprintf("%s\x00%s\x00%s", typ, key.Kind, key.Value)
	if id, hit := c.cache[cacheKey]; hit {
		return id, true, nil
	}

	var class *domain.TaxClass
	switch key.Kind {
	case domain.TaxClassKindID:
		n, perr := strconv.Atoi(key.Value)
		if perr != nil {
			return 0, false, domain.Errorf(domain.EINVALID, op, "%s tax class id %q is not numeric", typ, key.Value)
		}
		class, err = c.repo.ClassByID(ctx, typ, n)
	case domain.TaxClassKindName:
		class, err = c.repo.ClassByName(ctx, typ, key.Value)
	default:
		return 0, false, domain.Errorf(domain.EINVALID, op, "unknown tax class key kind %q", key.Kind)
	}
	if err != nil {
		return 0, false, domain.WrapError(err, domain.EINTERNAL, op, "tax class lookup failed")
	}
	if class == nil {
		return 0, false, domain.Errorf(domain.ENOTFOUND, op, "%s tax class %q not found", typ, key.Value)
	}

	c.cache[cacheKey] = class.ID
	return class.ID, true, nil
}
