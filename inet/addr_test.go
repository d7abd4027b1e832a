package inet

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/netip"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/netbuf/testutil"
)

func TestSetAndAccessors(t *testing.T) {
	rng := testutil.NewRNG(1)

	for range 100 {
		var a Addr
		ip := rng.Bytes(4)
		port := uint16(rng.Intn(65536))
		assert.Equal(t, FamilyIPv4, a.Set(ip, port))
		assert.Equal(t, ip, a.IP())
		assert.Equal(t, port, a.Port())
		assert.True(t, a.IsIPv4())
		assert.True(t, a.IsIP())
	}

	for range 100 {
		var a Addr
		ip := rng.Bytes(16)
		port := uint16(rng.Intn(65536))
		assert.Equal(t, FamilyIPv6, a.Set(ip, port))
		assert.Equal(t, ip, a.IP())
		assert.Equal(t, port, a.Port())
		assert.True(t, a.IsIPv6())
	}

	a := FromIPPort([]byte{1, 2, 3}, 80)
	assert.True(t, a.IsNil())
	assert.False(t, a.IsIP())
	assert.Nil(t, a.IP())
	assert.Zero(t, a.Port())
}

func TestSetPort(t *testing.T) {
	var nilAddr Addr
	nilAddr.SetPort(80)
	assert.Zero(t, nilAddr.Port())
	assert.Equal(t, Addr{}, nilAddr)

	a := IPv4Any()
	a.SetPort(443)
	assert.Equal(t, "0.0.0.0/443", a.String())
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, "127.0.0.1/9993", IPv4Loopback(9993).String())
	assert.Equal(t, "0.0.0.0/0", IPv4Any().String())
	assert.Equal(t, "::1/9993", IPv6Loopback(9993).String())
	assert.Equal(t, "::/0", IPv6Any().String())
}

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2603:6010:6e00:1118:d92a:AB88:4dfb:670a/1234", "2603:6010:6e00:1118:d92a:ab88:4dfb:670a/1234"},
		{"fd80::1/1234", "fd80::1/1234"},
		{"1.2.3.4/1234", "1.2.3.4/1234"},
		{"  10.0.0.1  ", "10.0.0.1/0"},
		{"10.0.0.1/notaport", "10.0.0.1/0"},
		{"10.0.0.1/70000", "10.0.0.1/0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}

	a, err := Parse("")
	require.NoError(t, err)
	assert.True(t, a.IsNil())
	assert.Equal(t, "(null)", a.String())
	assert.Equal(t, "(null)", a.IPString())

	for _, bad := range []string{"1.2.3", "not an ip/80", "fe80::1%eth0", "1.2.3.4.5/1"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, bad)
	}

	assert.Panics(t, func() { MustParse("x") })
	assert.Equal(t, "1.2.3.4", MustParse("1.2.3.4/5").IPString())
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		addr, cidr string
		want       bool
	}{
		{"10.0.0.5", "10.0.0.0/24", true},
		{"10.0.1.5", "10.0.0.0/24", false},
		{"10.0.0.5", "10.0.0.1/24", true},
		{"10.0.0.5", "10.0.0.5/32", true},
		{"10.0.0.6", "10.0.0.5/32", false},
		{"192.168.1.1", "0.0.0.0/0", true},
		{"10.0.0.5", "10.0.0.0/33", false},
		{"fd00::1", "fc00::/7", true},
		{"fe80::1", "fc00::/7", false},
		{"2001:db8::1", "2001:db8::/32", true},
		{"2001:db8:1::1", "2001:db8::/33", true},
		{"2001:db8:8000::1", "2001:db8::/33", false},
		{"2001:db8::1", "2001:db8::1/128", true},
		{"2001:db8::2", "2001:db8::1/128", false},
		{"2001:db8::2", "::/0", true},
		{"2001:db8::2", "::/129", false},
		{"10.0.0.5", "::/0", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr+" in "+tt.cidr, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.addr).IsWithin(MustParse(tt.cidr)))
		})
	}

	assert.False(t, Addr{}.IsWithin(Addr{}))
}

func TestScope(t *testing.T) {
	tests := map[string]Scope{
		"0.1.2.3":         ScopeNone,
		"255.1.2.3":       ScopeNone,
		"10.1.2.3":        ScopePrivate,
		"127.0.0.1":       ScopeLoopback,
		"100.64.0.1":      ScopeShared,
		"100.128.0.1":     ScopeGlobal,
		"169.254.1.1":     ScopeLinkLocal,
		"169.253.1.1":     ScopeGlobal,
		"172.16.0.1":      ScopePrivate,
		"172.32.0.1":      ScopeGlobal,
		"192.168.0.1":     ScopePrivate,
		"192.0.2.1":       ScopePrivate,
		"192.0.3.1":       ScopeGlobal,
		"198.18.0.1":      ScopePrivate,
		"198.19.255.1":    ScopePrivate,
		"198.51.100.7":    ScopePrivate,
		"198.20.0.1":      ScopeGlobal,
		"203.0.113.9":     ScopePrivate,
		"203.0.114.9":     ScopeGlobal,
		"6.1.1.1":         ScopePseudoPrivate,
		"56.1.1.1":        ScopePseudoPrivate,
		"224.0.0.1":       ScopeMulticast,
		"240.0.0.1":       ScopePrivate,
		"8.8.8.8":         ScopeGlobal,
		"ff02::1":         ScopeMulticast,
		"fe80::1":         ScopeLoopback,
		"fe80::1:2":       ScopeLinkLocal,
		"febf::1":         ScopeLoopback,
		"febf::2":         ScopeLinkLocal,
		"febf::1:1":       ScopeLinkLocal,
		"fec0::1":         ScopeGlobal,
		"fd00::1":         ScopePrivate,
		"fc00::1":         ScopePrivate,
		"::1":             ScopeLoopback,
		"::":              ScopeNone,
		"2001:4860::8888": ScopeGlobal,
	}
	for ip, want := range tests {
		assert.Equal(t, want, MustParse(ip).Scope(), ip)
	}

	assert.Equal(t, ScopeNone, Addr{}.Scope())
	assert.Equal(t, "pseudo-private", ScopePseudoPrivate.String())
	assert.Equal(t, "Scope(42)", Scope(42).String())
}

func TestCompare(t *testing.T) {
	addrs := []Addr{
		MustParse("::1/2"),
		MustParse("10.0.0.2/1"),
		{},
		MustParse("::1/1"),
		MustParse("10.0.0.1/9"),
		MustParse("10.0.0.2/0"),
	}
	slices.SortFunc(addrs, Addr.Compare)

	var got []string
	for _, a := range addrs {
		got = append(got, a.String())
	}
	assert.Equal(t, []string{"(null)", "10.0.0.1/9", "10.0.0.2/0", "10.0.0.2/1", "::1/1", "::1/2"}, got)

	assert.Zero(t, MustParse("1.2.3.4/5").Compare(FromIPPort([]byte{1, 2, 3, 4}, 5)))
	assert.True(t, MustParse("1.2.3.4/5") == FromIPPort([]byte{1, 2, 3, 4}, 5))
}

func TestKey(t *testing.T) {
	m := map[Key]string{}
	m[MustParse("1.2.3.4/5").Key()] = "a"
	m[MustParse("1.2.3.4/6").Key()] = "b"
	m[MustParse("::1/5").Key()] = "c"
	assert.Len(t, m, 3)

	k := MustParse("::1/5").Key()
	assert.Equal(t, Key{Hi: 0, Lo: 1, Port: 5}, k)
}

func TestStdlibConversions(t *testing.T) {
	a := MustParse("192.0.2.7/5353")

	ap := a.AddrPort()
	assert.Equal(t, netip.MustParseAddrPort("192.0.2.7:5353"), ap)
	assert.Equal(t, a, FromAddrPort(ap))

	ua := a.UDPAddr()
	require.NotNil(t, ua)
	assert.Equal(t, 5353, ua.Port)
	assert.Equal(t, a, FromUDPAddr(ua))

	// 16-byte IPv4 forms from the net package unmap to IPv4.
	mapped := FromUDPAddr(&net.UDPAddr{IP: net.ParseIP("10.1.2.3"), Port: 53})
	assert.Equal(t, "10.1.2.3/53", mapped.String())

	v6 := MustParse("2001:db8::1/443")
	assert.Equal(t, v6, FromAddrPort(v6.AddrPort()))

	assert.Nil(t, Addr{}.UDPAddr())
	assert.False(t, Addr{}.AddrPort().IsValid())
	assert.True(t, FromUDPAddr(nil).IsNil())
	assert.True(t, FromAddrPort(netip.AddrPort{}).IsNil())
}

func TestBinary(t *testing.T) {
	for _, s := range []string{"", "1.2.3.4/258", "2001:db8::1/65535"} {
		a := MustParse(s)

		data, err := a.MarshalBinary()
		require.NoError(t, err)
		assert.Len(t, data, a.BinaryLen())

		var got Addr
		require.NoError(t, got.UnmarshalBinary(data))
		assert.Equal(t, a, got)

		var buf bytes.Buffer
		n, err := a.WriteTo(&buf)
		require.NoError(t, err)
		assert.EqualValues(t, a.BinaryLen(), n)

		read, err := ReadAddr(&buf)
		require.NoError(t, err)
		assert.Equal(t, a, read)
	}

	data, err := MustParse("1.2.3.4/258").MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 1, 2, 3, 4, 1, 2}, data)

	t.Run("errors", func(t *testing.T) {
		var a Addr
		assert.ErrorIs(t, a.UnmarshalBinary(nil), ErrInvalidAddress)
		assert.ErrorIs(t, a.UnmarshalBinary([]byte{4, 1, 2}), ErrInvalidAddress)
		assert.ErrorIs(t, a.UnmarshalBinary([]byte{0, 0}), ErrInvalidAddress)

		_, err := ReadAddr(bytes.NewReader([]byte{6, 1, 2}))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		_, err = ReadAddr(bytes.NewReader(nil))
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("unknown tag", func(t *testing.T) {
		r := bytes.NewReader([]byte{9, 0xaa})
		a, err := ReadAddr(r)
		require.NoError(t, err)
		assert.True(t, a.IsNil())
		assert.Equal(t, 1, r.Len())
	})
}

func TestTextAndJSON(t *testing.T) {
	a := MustParse("fd80::1/1234")

	text, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fd80::1/1234", string(text))

	var got Addr
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, a, got)

	type peer struct {
		Addr Addr `json:"addr"`
		Nil  Addr `json:"nil"`
	}
	data, err := json.Marshal(peer{Addr: a})
	require.NoError(t, err)
	assert.JSONEq(t, `{"addr":"fd80::1/1234","nil":""}`, string(data))

	var p peer
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, a, p.Addr)
	assert.True(t, p.Nil.IsNil())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"addr":"bogus"}`), &p), ErrInvalidAddress)
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "none", FamilyNone.String())
	assert.Equal(t, "ipv4", FamilyIPv4.String())
	assert.Equal(t, "ipv6", FamilyIPv6.String())
	assert.Equal(t, "Family(9)", Family(9).String())
}
