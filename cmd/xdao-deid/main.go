// Command xdao-deid is the decentralized identifier CLI: local key
// management, meta generation and verification, identifier derivation, and
// meta store access.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ipfs/go-cid"

	"xdao.co/deid/address"
	"xdao.co/deid/identifier"
	"xdao.co/deid/keys"
	"xdao.co/deid/meta"
	"xdao.co/deid/registry/storeregistry"

	_ "xdao.co/deid/registry/storeregistry/grpcstore"
	_ "xdao.co/deid/registry/storeregistry/localfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "meta":
		return cmdMeta(args[1:], out, errOut)
	case "id":
		return cmdID(args[1:], out, errOut)
	case "addr":
		return cmdAddr(args[1:], out, errOut)
	case "match":
		return cmdMatch(args[1:], out, errOut)
	case "store":
		return cmdStore(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "xdao-deid: decentralized identifier toolkit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xdao-deid key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  xdao-deid key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  xdao-deid key list")
	fmt.Fprintln(w, "  xdao-deid key export --name <name> [--role <role>]")
	fmt.Fprintln(w, "  xdao-deid meta generate --seed <name> [--version mkm|btc] (--algorithm rsa|ed25519|dilithium3 | --signer <name> [--signer-role <role>] | --seed-hex <64hex>) [--key-out <path>]")
	fmt.Fprintln(w, "  xdao-deid meta verify <record.json>")
	fmt.Fprintln(w, "  xdao-deid meta cid <record.json>")
	fmt.Fprintln(w, "  xdao-deid id derive --meta <record.json> --network <type> [--terminal <t>]")
	fmt.Fprintln(w, "  xdao-deid id parse <identifier>")
	fmt.Fprintln(w, "  xdao-deid addr decode <address>")
	fmt.Fprintln(w, "  xdao-deid match --meta <record.json> --id <identifier>")
	fmt.Fprintln(w, "  xdao-deid store put|get|has --backend <name> [backend flags] <arg>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - keys are stored under ~/.xdao/deid/keys/<name> (0600 private key files)")
	fmt.Fprintln(w, "  - network types: btc, main, group, polylogue, chatroom, provider, station, thing, robot, or a 0xNN byte")
	fmt.Fprintln(w, "  - meta generate writes the canonical record JSON to stdout (no trailing newline)")
	fmt.Fprintln(w, "  - version btc takes no --seed and yields nameless identifiers")
}

func parseNetwork(s string) (address.NetworkType, error) {
	switch strings.ToLower(s) {
	case "btc", "btcmain":
		return address.NetworkBTCMain, nil
	case "main":
		return address.NetworkMain, nil
	case "group":
		return address.NetworkGroup, nil
	case "polylogue":
		return address.NetworkPolylogue, nil
	case "chatroom":
		return address.NetworkChatroom, nil
	case "provider":
		return address.NetworkProvider, nil
	case "station":
		return address.NetworkStation, nil
	case "thing":
		return address.NetworkThing, nil
	case "robot":
		return address.NetworkRobot, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid network byte %q", s)
		}
		return address.NetworkType(v), nil
	}
	return 0, fmt.Errorf("unknown network type %q", s)
}

func parseVersion(s string) (meta.Version, error) {
	switch strings.ToLower(s) {
	case "", "mkm", "1", "0x01":
		return meta.VersionMKM, nil
	case "btc", "2", "0x02":
		return meta.VersionBTC, nil
	default:
		return 0, fmt.Errorf("unknown meta version %q", s)
	}
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "xdao-deid key: minimal local key management")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xdao-deid key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  xdao-deid key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  xdao-deid key list")
	fmt.Fprintln(w, "  xdao-deid key export --name <name> [--role <role>]")
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var force bool

	fs.StringVar(&name, "name", "", "Key name (directory under ~/.xdao/deid/keys)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional ed25519 seed as 64 hex chars (for reproducible demos)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckLocalName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		var derr error
		seed, derr = keys.ParseSeedHex(seedHex)
		if derr != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", derr)
			return 2
		}
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
	}

	pubKey, rootPath, err := ks.InitializeRootKey(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created root key: %s\n", pubKey)
	fmt.Fprintf(out, "Stored at: %s\n", rootPath)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var from string
	var role string
	var force bool

	fs.StringVar(&from, "from", "", "Root key name")
	fs.StringVar(&role, "role", "", "Role identifier (e.g. station, robot)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" {
		fmt.Fprintln(errOut, "missing --from")
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	if err := keys.CheckLocalName(from); err != nil {
		fmt.Fprintf(errOut, "invalid --from: %v\n", err)
		return 2
	}
	if err := keys.CheckLocalName(role); err != nil {
		fmt.Fprintf(errOut, "invalid --role: %v\n", err)
		return 2
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	pubKey, rolePath, err := ks.DeriveRoleKey(from, role, force)
	if err != nil {
		fmt.Fprintf(errOut, "derive role key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created role key: %s\n", pubKey)
	fmt.Fprintf(out, "Stored at: %s\n", rolePath)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	entries, err := ks.ListKeys()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s\n", e.Name)
		for _, r := range e.Roles {
			fmt.Fprintf(out, "  - %s\n", r)
		}
	}
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var role string

	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&role, "role", "", "Optional role (if set, exports derived role key)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckLocalName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	if role != "" {
		if err := keys.CheckLocalName(role); err != nil {
			fmt.Fprintf(errOut, "invalid --role: %v\n", err)
			return 2
		}
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	sk, err := ks.SignKey(name, role)
	if err != nil {
		fmt.Fprintf(errOut, "export key: %v\n", err)
		return 1
	}
	pubKey, err := keys.PublicKeyString(ed25519.PublicKey(sk.PublicKey().Bytes()))
	if err != nil {
		fmt.Fprintf(errOut, "export key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, pubKey)
	return 0
}

func cmdMeta(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xdao-deid meta <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: generate, verify, cid")
		return 2
	}
	switch args[0] {
	case "generate":
		return cmdMetaGenerate(args[1:], out, errOut)
	case "verify":
		return cmdMetaVerify(args[1:], out, errOut)
	case "cid":
		return cmdMetaCID(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown meta subcommand: %s\n", args[0])
		return 2
	}
}

func cmdMetaGenerate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("meta generate", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var seed string
	var versionName string
	var algorithm string
	var signerName string
	var signerRole string
	var seedHex string
	var keyOut string

	fs.StringVar(&seed, "seed", "", "Seed (identifier name); required for version mkm, forbidden for version btc")
	fs.StringVar(&versionName, "version", "mkm", "Meta version: mkm or btc")
	fs.StringVar(&algorithm, "algorithm", "", "Generate an ephemeral key: rsa, ed25519, or dilithium3")
	fs.StringVar(&signerName, "signer", "", "Use a stored key by name (from 'xdao-deid key init')")
	fs.StringVar(&signerRole, "signer-role", "", "When using --signer, optionally use a derived role key")
	fs.StringVar(&seedHex, "seed-hex", "", "ed25519 key seed as 64 hex chars")
	fs.StringVar(&keyOut, "key-out", "", "Write the private key material to this file (0600)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	version, err := parseVersion(versionName)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --version: %v\n", err)
		return 2
	}
	picked := 0
	for _, s := range []string{algorithm, signerName, seedHex} {
		if s != "" {
			picked++
		}
	}
	if picked == 0 {
		fmt.Fprintln(errOut, "missing signer: use --algorithm, --signer, or --seed-hex")
		return 2
	}
	if picked > 1 {
		fmt.Fprintln(errOut, "conflicting signer flags: pick one of --algorithm, --signer, --seed-hex")
		return 2
	}

	var sk keys.SignKey
	switch {
	case signerName != "":
		ks, err := keys.OpenKeyStore("")
		if err != nil {
			fmt.Fprintf(errOut, "keys: %v\n", err)
			return 1
		}
		sk, err = ks.SignKey(signerName, signerRole)
		if err != nil {
			fmt.Fprintf(errOut, "invalid signer: %v\n", err)
			return 2
		}
	case seedHex != "":
		raw, err := keys.ParseSeedHex(seedHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
			return 2
		}
		sk, err = keys.NewEd25519SignKey(raw)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
			return 2
		}
	default:
		switch strings.ToLower(algorithm) {
		case "rsa":
			rsaKey, err := keys.GenerateRSA(keys.DefaultRSABits)
			if err != nil {
				fmt.Fprintf(errOut, "generate rsa: %v\n", err)
				return 1
			}
			sk = rsaKey
		case "ed25519":
			edKey, err := keys.GenerateEd25519()
			if err != nil {
				fmt.Fprintf(errOut, "generate ed25519: %v\n", err)
				return 1
			}
			sk = edKey
		case "dilithium3":
			dKey, err := keys.GenerateDilithium3()
			if err != nil {
				fmt.Fprintf(errOut, "generate dilithium3: %v\n", err)
				return 1
			}
			sk = dKey
		default:
			fmt.Fprintf(errOut, "unknown --algorithm: %s\n", algorithm)
			return 2
		}
	}

	m, err := meta.Generate(sk, seed, version)
	if err != nil {
		fmt.Fprintf(errOut, "generate meta: %v\n", err)
		return 1
	}
	record, err := m.CanonicalBytes()
	if err != nil {
		fmt.Fprintf(errOut, "render record: %v\n", err)
		return 1
	}
	recordCID, err := m.CID()
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}

	if keyOut != "" {
		material, err := privateKeyMaterial(sk)
		if err != nil {
			fmt.Fprintf(errOut, "key-out: %v\n", err)
			return 1
		}
		if err := os.WriteFile(keyOut, material, 0o600); err != nil {
			fmt.Fprintf(errOut, "write key-out: %v\n", err)
			return 1
		}
		fmt.Fprintf(errOut, "Private key: %s\n", keyOut)
	}

	fmt.Fprintf(errOut, "Meta-CID: %s\n", recordCID)
	_, _ = out.Write(record)
	return 0
}

func privateKeyMaterial(sk keys.SignKey) ([]byte, error) {
	switch k := sk.(type) {
	case *keys.RSASignKey:
		return []byte(k.PrivatePEM()), nil
	case *keys.Ed25519SignKey:
		return []byte(hex.EncodeToString(k.Seed()) + "\n"), nil
	default:
		return nil, fmt.Errorf("%s keys cannot be exported", sk.Algorithm())
	}
}

func cmdMetaVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("meta verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-deid meta verify <record.json>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read record: %v\n", err)
		return 1
	}
	m, err := meta.ParseRecord(b)
	if err != nil {
		fmt.Fprintf(errOut, "invalid record: %v\n", err)
		return 1
	}
	recordCID, err := m.CID()
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "OK version=0x%02x", byte(m.Version()))
	if m.Seed() != "" {
		fmt.Fprintf(out, " seed=%s", m.Seed())
	}
	fmt.Fprintf(out, " cid=%s\n", recordCID)
	return 0
}

func cmdMetaCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("meta cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-deid meta cid <record.json>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read record: %v\n", err)
		return 1
	}
	m, err := meta.ParseRecord(b)
	if err != nil {
		fmt.Fprintf(errOut, "invalid record: %v\n", err)
		return 1
	}
	recordCID, err := m.CID()
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, recordCID)
	return 0
}

func cmdID(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xdao-deid id <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: derive, parse")
		return 2
	}
	switch args[0] {
	case "derive":
		return cmdIDDerive(args[1:], out, errOut)
	case "parse":
		return cmdIDParse(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown id subcommand: %s\n", args[0])
		return 2
	}
}

func cmdIDDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("id derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var metaPath string
	var networkName string
	var terminal string

	fs.StringVar(&metaPath, "meta", "", "Meta record file")
	fs.StringVar(&networkName, "network", "main", "Network type")
	fs.StringVar(&terminal, "terminal", "", "Optional terminal suffix")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if metaPath == "" {
		fmt.Fprintln(errOut, "missing --meta")
		return 2
	}
	network, err := parseNetwork(networkName)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --network: %v\n", err)
		return 2
	}
	b, err := os.ReadFile(metaPath)
	if err != nil {
		fmt.Fprintf(errOut, "read record: %v\n", err)
		return 1
	}
	m, err := meta.ParseRecord(b)
	if err != nil {
		fmt.Fprintf(errOut, "invalid record: %v\n", err)
		return 1
	}
	addr, err := m.GenerateAddress(network)
	if err != nil {
		fmt.Fprintf(errOut, "derive address: %v\n", err)
		return 1
	}
	id, err := identifier.Compose(m.Seed(), addr, terminal)
	if err != nil {
		fmt.Fprintf(errOut, "compose identifier: %v\n", err)
		return 1
	}
	fmt.Fprintf(errOut, "Search-Number: %d\n", id.Number())
	_, _ = fmt.Fprintln(out, id.String())
	return 0
}

func cmdIDParse(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("id parse", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-deid id parse <identifier>")
		return 2
	}
	id, err := identifier.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid identifier: %v\n", err)
		return 1
	}
	if id.Name() != "" {
		fmt.Fprintf(out, "Name: %s\n", id.Name())
	}
	fmt.Fprintf(out, "Address: %s\n", id.Address().String())
	fmt.Fprintf(out, "Network: 0x%02x\n", byte(id.Type()))
	fmt.Fprintf(out, "Search-Number: %d\n", id.Number())
	if id.Terminal() != "" {
		fmt.Fprintf(out, "Terminal: %s\n", id.Terminal())
	}
	if id.IsBroadcast() {
		fmt.Fprintln(out, "Broadcast: true")
	}
	return 0
}

func cmdAddr(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "decode" {
		fmt.Fprintln(errOut, "usage: xdao-deid addr decode <address>")
		return 2
	}
	fs := flag.NewFlagSet("addr decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-deid addr decode <address>")
		return 2
	}
	addr, err := address.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid address: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Network: 0x%02x\n", byte(addr.Network()))
	fmt.Fprintf(out, "Search-Number: %d\n", addr.Number())
	if addr.IsBroadcast() {
		fmt.Fprintln(out, "Broadcast: true")
	} else {
		fmt.Fprintf(out, "Check-Code: %s\n", hex.EncodeToString(addr.CheckCode()))
	}
	return 0
}

func cmdMatch(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var metaPath string
	var idText string

	fs.StringVar(&metaPath, "meta", "", "Meta record file")
	fs.StringVar(&idText, "id", "", "Identifier to check")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if metaPath == "" || idText == "" {
		fmt.Fprintln(errOut, "usage: xdao-deid match --meta <record.json> --id <identifier>")
		return 2
	}
	b, err := os.ReadFile(metaPath)
	if err != nil {
		fmt.Fprintf(errOut, "read record: %v\n", err)
		return 1
	}
	m, err := meta.ParseRecord(b)
	if err != nil {
		fmt.Fprintf(errOut, "invalid record: %v\n", err)
		return 1
	}
	id, err := identifier.Parse(idText)
	if err != nil {
		fmt.Fprintf(errOut, "invalid identifier: %v\n", err)
		return 1
	}
	if !m.MatchIdentifier(id) {
		_, _ = fmt.Fprintln(out, "MISMATCH")
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func decodeCID(s string) (cid.Cid, error) {
	id, err := cid.Decode(strings.TrimSpace(s))
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, fmt.Errorf("undefined cid")
	}
	return id, nil
}

func cmdStore(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xdao-deid store put|get|has --backend <name> [backend flags] <arg>")
		return 2
	}
	op := args[0]
	if op != "put" && op != "get" && op != "has" {
		fmt.Fprintf(errOut, "unknown store subcommand: %s\n", op)
		return 2
	}

	fs := flag.NewFlagSet("store "+op, flag.ContinueOnError)
	fs.SetOutput(errOut)
	backend := fs.String("backend", "localfs", "store backend name")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")
	storeregistry.RegisterFlags(fs, storeregistry.UsageCLI)

	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *listBackends {
		for _, b := range storeregistry.List(storeregistry.UsageCLI) {
			fmt.Fprintf(out, "%s\t%s\n", b.Name, b.Description)
		}
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(errOut, "usage: xdao-deid store %s --backend <name> [backend flags] <arg>\n", op)
		return 2
	}

	store, closeFn, err := storeregistry.Open(*backend, storeregistry.UsageCLI)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	switch op {
	case "put":
		b, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read record: %v\n", err)
			return 1
		}
		id, err := store.Put(b)
		if err != nil {
			fmt.Fprintf(errOut, "put: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, id.String())
		return 0
	case "get":
		id, err := decodeCID(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid cid: %v\n", err)
			return 2
		}
		b, err := store.Get(id)
		if err != nil {
			fmt.Fprintf(errOut, "get: %v\n", err)
			return 1
		}
		_, _ = out.Write(b)
		return 0
	default:
		id, err := decodeCID(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid cid: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintln(out, store.Has(id))
		return 0
	}
}
