package atari_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/intuitionamiga/m68kemu/internal/atari"
	"github.com/intuitionamiga/m68kemu/internal/m68k"
)

func TestAtari(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Atari ST Profile Suite")
}

// run loads program at the profile's system base, boots the CPU there
// (skipping the real vector-table PC so each scenario starts exactly at
// its own opcode), and single-steps n instructions.
func run(emu *m68k.Emulator, program []byte, n int) {
	Expect(atari.SeedBootVectors(emu)).To(Succeed())
	Expect(emu.LoadProgram(atari.SystemBase, program)).To(Succeed())
	Expect(emu.Reset()).To(Succeed())
	emu.CPU.PC = atari.SystemBase
	for i := 0; i < n; i++ {
		emu.Step()
	}
}

var _ = Describe("Atari ST boot profile", func() {
	var emu *m68k.Emulator

	BeforeEach(func() {
		emu = atari.Profile()
	})

	Describe("vector table seeding", func() {
		It("seeds the reset SSP and PC", func() {
			Expect(atari.SeedBootVectors(emu)).To(Succeed())
			ssp, err := emu.Bus.ReadL(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ssp).To(Equal(atari.InitialSSP))

			pc, err := emu.Bus.ReadL(m68k.LongSize)
			Expect(err).NotTo(HaveOccurred())
			Expect(pc).To(Equal(atari.SystemBase))
		})

		It("seeds MEMVALID, PHYSTOP and the screen base", func() {
			Expect(atari.SeedBootVectors(emu)).To(Succeed())
			v, _ := emu.Bus.ReadL(0x420)
			Expect(v).To(Equal(atari.MemValid))
			v, _ = emu.Bus.ReadL(0x42E)
			Expect(v).To(Equal(atari.RAMSize))
			v, _ = emu.Bus.ReadL(0x44E)
			Expect(v).To(Equal(atari.ScreenBase))
		})

		It("lands the CPU at the system base after Reset", func() {
			Expect(atari.SeedBootVectors(emu)).To(Succeed())
			Expect(emu.Reset()).To(Succeed())
			Expect(emu.CPU.PC).To(Equal(atari.SystemBase))
			Expect(emu.CPU.SSP).To(Equal(atari.InitialSSP))
			Expect(emu.CPU.Supervisor()).To(BeTrue())
		})
	})

	// spec.md §8's six numbered scenarios, run against the booted profile
	// rather than a bare CPU, since this is the roster's only entry point
	// a test can drive without a disk image.
	Describe("scenario 1: MOVEQ #$7F,D3", func() {
		It("loads a positive immediate with clear flags", func() {
			run(emu, []byte{0x76, 0x7F}, 1)
			Expect(emu.CPU.D[3]).To(Equal(uint32(0x0000007F)))
			Expect(emu.CPU.FlagN()).To(BeFalse())
			Expect(emu.CPU.FlagZ()).To(BeFalse())
			Expect(emu.CPU.FlagV()).To(BeFalse())
			Expect(emu.CPU.FlagC()).To(BeFalse())
		})
	})

	Describe("scenario 2: MOVEQ #$80,D0", func() {
		It("sign-extends a negative immediate", func() {
			run(emu, []byte{0x70, 0x80}, 1)
			Expect(emu.CPU.D[0]).To(Equal(uint32(0xFFFFFF80)))
			Expect(emu.CPU.FlagN()).To(BeTrue())
			Expect(emu.CPU.FlagZ()).To(BeFalse())
		})
	})

	Describe("scenario 3: ADDI.L #$00010000,D1 on D1=$7FFFFFFF", func() {
		It("overflows into the sign bit", func() {
			emu.CPU.D[1] = 0x7FFFFFFF
			run(emu, []byte{0x06, 0x81, 0x00, 0x01, 0x00, 0x00}, 1)
			Expect(emu.CPU.D[1]).To(Equal(uint32(0x8000FFFF)))
			Expect(emu.CPU.FlagV()).To(BeTrue())
			Expect(emu.CPU.FlagN()).To(BeTrue())
			Expect(emu.CPU.FlagZ()).To(BeFalse())
			Expect(emu.CPU.FlagC()).To(BeFalse())
			Expect(emu.CPU.FlagX()).To(BeFalse())
		})
	})

	Describe("scenario 4: CMPI.B #$10,D2 on D2.B=$05", func() {
		It("sets borrow without storing the result", func() {
			emu.CPU.D[2] = 0x05
			run(emu, []byte{0x0C, 0x02, 0x00, 0x10}, 1)
			Expect(emu.CPU.D[2]).To(Equal(uint32(0x05)))
			Expect(emu.CPU.FlagN()).To(BeTrue())
			Expect(emu.CPU.FlagZ()).To(BeFalse())
			Expect(emu.CPU.FlagV()).To(BeFalse())
			Expect(emu.CPU.FlagC()).To(BeTrue())
		})
	})

	Describe("scenario 5: LEA/MOVE.L round trip through absolute memory", func() {
		It("writes and reads back $DEADBEEF at $1000", func() {
			program := []byte{
				0x41, 0xF9, 0x00, 0x00, 0x10, 0x00, // LEA $1000.L,A0
				0x20, 0xBC, 0xDE, 0xAD, 0xBE, 0xEF, // MOVE.L #$DEADBEEF,(A0)
				0x20, 0x10, // MOVE.L (A0),D0
			}
			run(emu, program, 3)
			Expect(emu.CPU.AddrReg(0)).To(Equal(uint32(0x1000)))
			Expect(emu.CPU.D[0]).To(Equal(uint32(0xDEADBEEF)))

			b0, _ := emu.Bus.ReadB(0x1000)
			b1, _ := emu.Bus.ReadB(0x1001)
			b2, _ := emu.Bus.ReadB(0x1002)
			b3, _ := emu.Bus.ReadB(0x1003)
			Expect([]byte{b0, b1, b2, b3}).To(Equal([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
		})
	})

	Describe("scenario 6: TRAP #1 dispatch", func() {
		It("vectors through $084 and frames the old PC/SR", func() {
			Expect(atari.SeedBootVectors(emu)).To(Succeed())
			Expect(emu.Bus.WriteL(0x084, 0x00009000)).To(Succeed())
			Expect(emu.LoadProgram(atari.SystemBase, []byte{0x4E, 0x41})).To(Succeed())
			Expect(emu.Reset()).To(Succeed())
			emu.CPU.PC = atari.SystemBase
			emu.CPU.SetSupervisor(false)
			sspBefore := emu.CPU.SSP

			emu.Step()

			Expect(emu.CPU.PC).To(Equal(uint32(0x9000)))
			Expect(emu.CPU.Supervisor()).To(BeTrue())
			Expect(emu.CPU.SSP).To(Equal(sspBefore - 6))

			oldSR, err := emu.Bus.ReadW(emu.CPU.SSP)
			Expect(err).NotTo(HaveOccurred())
			oldPC, err := emu.Bus.ReadL(emu.CPU.SSP + 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(oldPC).To(Equal(atari.SystemBase + 2))
			Expect(oldSR & m68k.SRS).To(Equal(uint16(0)))
		})
	})
})
