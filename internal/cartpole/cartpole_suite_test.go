package cartpole_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCartpole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cartpole Suite")
}
