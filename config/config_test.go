/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package config

import (
	"testing"
)

func TestConfigDefaults(t *testing.T) {

	if res := Int(MaxNestingDepth); res != 200 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(LookAheadSize); res != 8 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(InternCacheEnabled); res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Str(MaxNestingDepth); res != "200" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestConfigOverride(t *testing.T) {
	orig := Config[MaxNestingDepth]
	defer func() { Config[MaxNestingDepth] = orig }()

	Config[MaxNestingDepth] = 5
	if res := Int(MaxNestingDepth); res != 5 {
		t.Error("Unexpected result:", res)
		return
	}
}
