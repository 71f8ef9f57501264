package note

import (
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/suite"
)

type CollectorTestSuite struct {
	suite.Suite
}

func TestCollectorTestSuite(t *testing.T) {
	suite.Run(t, new(CollectorTestSuite))
}

var (
	testGood = Template{ID: "TEST_GOOD", Category: General, Level: Good, Summary: "All good."}
	testVars = Template{ID: "TEST_VARS", Category: Caching, Level: Info, Summary: "{name} is {value} seconds old."}
)

func (s *CollectorTestSuite) TestOrderAndDuplicates() {
	c := NewCollector()
	c.Add("status", testGood)
	c.Add("header-age", testVars, V("name", "Age"), V("value", 10))
	c.Add("status", testGood)

	s.Equal([]string{"TEST_GOOD", "TEST_VARS", "TEST_GOOD"}, c.IDs())
	s.Len(c.Find("TEST_GOOD"), 2)
	s.True(c.Has("TEST_VARS"))
	s.False(c.Has("NOPE"))

	notes := c.Notes()
	s.Equal("header-age", notes[1].Subject)
	s.Equal(Caching, notes[1].Category)
	s.Equal("Age is 10 seconds old.", notes[1].Summary())
	s.Equal("All good.", notes[0].Summary())
}

func (s *CollectorTestSuite) TestBindAndMerge() {
	c := NewCollector()
	add := c.Bind("header-etag")
	add(testGood)

	other := NewCollector()
	other.Add("range", testVars, V("name", "x"), V("value", 1))

	c.Merge(other)
	c.Merge(nil)

	s.Equal(2, c.Len())
	s.Equal("header-etag", c.Notes()[0].Subject)
	s.Equal("range", c.Notes()[1].Subject)
}

func (s *CollectorTestSuite) TestNotesIsACopy() {
	c := NewCollector()
	c.Add("status", testGood)

	notes := c.Notes()
	notes[0].Subject = "changed"

	s.Equal("status", c.Notes()[0].Subject)
}

func (s *CollectorTestSuite) TestMarshalJSON() {
	c := NewCollector()
	c.Add("header-age", testVars, V("name", "Age"), V("value", 10))

	data, err := json.Marshal(c.Notes())
	s.Require().NoError(err)

	var decoded []map[string]any
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Require().Len(decoded, 1)
	s.Equal("TEST_VARS", decoded[0]["id"])
	s.Equal("header-age", decoded[0]["subject"])
	s.Equal("caching", decoded[0]["category"])
	s.Equal("Age is 10 seconds old.", decoded[0]["summary"])
	s.Equal(map[string]any{"name": "Age", "value": "10"}, decoded[0]["vars"])
}
