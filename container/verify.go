package container

// Verify checks the declared dependency graph before any factory runs:
// every token named in a binding's Needs must itself be registered, and the
// declared edges must form no cycle. A violation is a configuration error and
// surfaces here, at construction time, instead of later at an unrelated call
// site.
//
// Tokens passed as assumed are treated as provided externally — typically
// request-scoped registrations that are installed into a child scope per
// invocation.
//
// Only declared edges are checked; a factory that resolves an undeclared
// token still fails eagerly, but at first resolution rather than here.
func (c *Container) Verify(assumed ...Token) error {
	assumedSet := make(map[Token]bool, len(assumed))
	for _, t := range assumed {
		assumedSet[c.canonical(t)] = true
	}

	c.mu.RLock()
	tokens := make([]Token, 0, len(c.bindings))
	for t := range c.bindings {
		tokens = append(tokens, t)
	}
	c.mu.RUnlock()

	const (
		unseen = iota
		visiting
		done
	)
	state := make(map[Token]int)

	var visit func(token Token, path []Token) error
	visit = func(token Token, path []Token) error {
		switch state[token] {
		case done:
			return nil
		case visiting:
			return &CycleError{Chain: append(append([]Token{}, path...), token)}
		}
		state[token] = visiting

		b := c.lookupBinding(token)
		if b != nil {
			next := append(append([]Token{}, path...), token)
			for _, dep := range b.needs {
				key := c.canonical(dep)
				if assumedSet[key] {
					continue
				}
				if !c.Bound(key) {
					return &MissingProviderError{Token: key, RequiredBy: token}
				}
				if err := visit(key, next); err != nil {
					return err
				}
			}
		}

		state[token] = done
		return nil
	}

	for _, token := range tokens {
		if err := visit(token, nil); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) lookupBinding(token Token) *binding {
	key := c.canonical(token)
	for cc := c; cc != nil; cc = cc.parent {
		cc.mu.RLock()
		b, ok := cc.bindings[key]
		cc.mu.RUnlock()
		if ok {
			return b
		}
	}
	return nil
}
