//go:build tools

package tools

import (
	_ "github.com/daixiang0/gci"
	_ "github.com/golang/mock/mockgen"
	_ "mvdan.cc/gofumpt"
)
