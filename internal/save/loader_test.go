package save_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/checkup/internal/save"
	"github.com/cory-johannsen/checkup/internal/save/savetest"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<SaveGame xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <player>
    <name>Robin</name>
    <farmName>Willow</farmName>
    <money>1200</money>
    <totalMoneyEarned>65000</totalMoneyEarned>
    <deepestMineLevel>130</deepestMineLevel>
    <houseUpgradeLevel>2</houseUpgradeLevel>
    <millisecondsPlayed>7260000</millisecondsPlayed>
    <spouse>Leah</spouse>
    <hasRustyKey>true</hasRustyKey>
    <hasSkullKey>false</hasSkullKey>
    <experiencePoints>
      <int>15000</int><int>380</int><int>0</int><int>99</int><int>100</int><int>0</int>
    </experiencePoints>
    <friendshipData>
      <item>
        <key><string>Leah</string></key>
        <value><Friendship><Points>2600</Points></Friendship></value>
      </item>
    </friendshipData>
    <fishCaught>
      <item>
        <key><int>128</int></key>
        <value><ArrayOfInt><int>3</int><int>21</int></ArrayOfInt></value>
      </item>
    </fishCaught>
    <mailReceived><string>CF_Fair</string><string>ccPantry</string></mailReceived>
    <stats>
      <questsCompleted>12</questsCompleted>
      <specificMonstersKilled>
        <item><key><string>Green Slime</string></key><value><int>40</int></value></item>
      </specificMonstersKilled>
    </stats>
  </player>
  <locations>
    <GameLocation xsi:type="FarmHouse">
      <name>FarmHouse</name>
      <characters>
        <NPC xsi:type="Child"><name>Pip</name></NPC>
      </characters>
    </GameLocation>
    <GameLocation xsi:type="LibraryMuseum">
      <name>ArchaeologyHouse</name>
      <museumPieces>
        <item><key><Vector2><X>26</X><Y>5</Y></Vector2></key><value><int>96</int></value></item>
      </museumPieces>
    </GameLocation>
  </locations>
  <year>2</year>
  <currentSeason>fall</currentSeason>
  <dayOfMonth>14</dayOfMonth>
</SaveGame>`

func TestLoadXML_Sample(t *testing.T) {
	root, err := save.LoadXML(strings.NewReader(sampleXML))
	require.NoError(t, err)
	snap, err := save.NewSnapshot(root)
	require.NoError(t, err)

	assert.Equal(t, "Robin", snap.FarmerName())
	assert.Equal(t, "Willow", snap.FarmName())
	assert.Equal(t, 65000, snap.TotalMoneyEarned())
	assert.Equal(t, 130, snap.DeepestMineLevel())
	assert.Equal(t, "Leah", snap.Spouse())
	assert.True(t, snap.HasRustyKey())
	assert.False(t, snap.HasSkullKey())
	assert.Equal(t, [save.SkillCount]int{15000, 380, 0, 99, 100, 0}, snap.Experience())
	assert.Equal(t, map[string]int{"Leah": 2600}, snap.Friendship())
	assert.Equal(t, map[string]int{"128": 3}, snap.FishCaught())
	assert.True(t, snap.MailReceived()["ccPantry"])
	assert.Equal(t, 12, snap.QuestsCompleted())
	assert.Equal(t, map[string]int{"Green Slime": 40}, snap.MonstersKilled())
	assert.Equal(t, map[string]bool{"96": true}, snap.MuseumDonations())
	assert.Equal(t, save.Date{Year: 2, Season: "fall", Day: 14}, snap.Date())

	kids := snap.Children()
	require.Len(t, kids, 1)
	assert.Equal(t, "Pip", kids[0].Name)
	assert.Equal(t, "FarmHouse", kids[0].Location)
}

func TestLoadXML_NamespacedAttributeKey(t *testing.T) {
	root, err := save.LoadXML(strings.NewReader(sampleXML))
	require.NoError(t, err)
	loc := root.Child("locations").Children("GameLocation")[0]
	assert.Equal(t, "FarmHouse", loc.Attr("xsi:type"))
}

func TestLoadXML_NotXML(t *testing.T) {
	_, err := save.LoadXML(strings.NewReader("<<not xml"))
	assert.Error(t, err)
}

func TestLoadXML_Empty(t *testing.T) {
	_, err := save.LoadXMLBytes(nil)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Robin_123")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0644))
	root, err := save.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, save.RootElement, root.Name())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := save.LoadFile("/nonexistent/save")
	assert.Error(t, err)
}

func TestLoadXMLBytes_BuilderDocument(t *testing.T) {
	data, err := savetest.New("Ann", "Hill").
		TotalMoneyEarned(600000).
		Pet("Cat", "Tom", 900).
		Date(3, "winter", 28).
		XML()
	require.NoError(t, err)

	root, err := save.LoadXMLBytes(data)
	require.NoError(t, err)
	s, err := save.NewSnapshot(root)
	require.NoError(t, err)

	assert.Equal(t, "Ann", s.FarmerName())
	assert.Equal(t, 600000, s.TotalMoneyEarned())
	assert.Equal(t, save.Date{Year: 3, Season: "winter", Day: 28}, s.Date())
	pets := s.Pets()
	require.Len(t, pets, 1)
	assert.Equal(t, "Tom", pets[0].Name)
	assert.Equal(t, 900, pets[0].Friendship)
}
